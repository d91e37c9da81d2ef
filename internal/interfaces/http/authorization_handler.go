package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/dto"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

// AuthorizationHandler maneja la administración de dosificaciones (protegido).
type AuthorizationHandler struct {
	repo repository.AuthorizationRepository
}

// NewAuthorizationHandler construye el handler.
func NewAuthorizationHandler(repo repository.AuthorizationRepository) *AuthorizationHandler {
	return &AuthorizationHandler{repo: repo}
}

// GetByCode devuelve la dosificación. La llave de cifrado nunca sale por la API.
// GET /api/authorizations/:code
func (h *AuthorizationHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requerido"})
	}
	auth, err := h.repo.Get(c.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	auth.Key = ""
	return c.JSON(auth)
}

// Create registra una dosificación emitida por la autoridad tributaria.
// POST /api/authorizations
func (h *AuthorizationHandler) Create(c *fiber.Ctx) error {
	var auth entity.Authorization
	if err := c.BodyParser(&auth); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if auth.Code == "" || auth.OrderNumber == "" || auth.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code, order_number y key requeridos"})
	}
	if auth.NextInvoice >= auth.LastInvoice {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de numeración inválido"})
	}
	if err := h.repo.Create(c.Context(), &auth); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	auth.Key = ""
	return c.Status(fiber.StatusCreated).JSON(auth)
}
