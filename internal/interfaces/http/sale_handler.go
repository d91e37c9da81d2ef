package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/dto"
	"github.com/BenoitRanque/guembe-pos-extension/internal/application/sale"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/pkg/logger"
)

// SaleHandler maneja las operaciones del punto de venta (protegido).
type SaleHandler struct {
	quickSale *sale.QuickSaleUseCase
	log       *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(quickSale *sale.QuickSaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{quickSale: quickSale, log: log}
}

// Process despacha una operación de venta según el campo Operation del sobre.
// POST /api/sales
func (h *SaleHandler) Process(c *fiber.Ctx) error {
	var in dto.SaleOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	switch in.Operation {
	case "QUICKSALE":
		resp, err := h.quickSale.Execute(c.Context(), in.Data, in.Test)
		if err != nil {
			return h.saleError(c, err)
		}
		h.log.Info().
			Str("operation", in.Operation).
			Str("sales_point", in.Data.SalesPointCode).
			Str("card_code", in.Data.CardCode).
			Bool("test", in.Test).
			Msg("venta procesada")
		return c.Status(fiber.StatusCreated).JSON(resp)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "UNKNOWN_OPERATION",
			Message: "operación desconocida: '" + in.Operation + "'",
		})
	}
}

// saleError traduce los errores del dominio a códigos HTTP.
func (h *SaleHandler) saleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPrecondition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRECONDITION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("venta fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
