package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/dto"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

// SalesPointHandler maneja la administración de puntos de venta (protegido).
type SalesPointHandler struct {
	repo repository.SalesPointRepository
}

// NewSalesPointHandler construye el handler.
func NewSalesPointHandler(repo repository.SalesPointRepository) *SalesPointHandler {
	return &SalesPointHandler{repo: repo}
}

// GetByCode devuelve el punto de venta con su catálogo y asignaciones.
// GET /api/sales-points/:code
func (h *SalesPointHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requerido"})
	}
	sp, err := h.repo.Get(c.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sp)
}

// Create registra un punto de venta con su catálogo y asignaciones.
// POST /api/sales-points
func (h *SalesPointHandler) Create(c *fiber.Ctx) error {
	var sp entity.SalesPoint
	if err := c.BodyParser(&sp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if sp.Code == "" || sp.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name requeridos"})
	}
	if err := h.repo.Create(c.Context(), &sp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(sp)
}
