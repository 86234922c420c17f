package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/pkg/validator"
)

// writeDomainError traduce errores de dominio a respuestas HTTP. Los errores
// de negocio (stock insuficiente, duplicado) nunca llegan como 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   shortage.Error(),
			Available: &shortage.Available,
			Requested: &shortage.Requested,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	// No filtrar detalles internos al cliente.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// parseAndValidate parsea el body JSON y valida sus etiquetas `validate`.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fieldErrs := validator.ValidateStruct(out); fieldErrs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "VALIDATION",
			"message": "datos inválidos",
			"fields":  fieldErrs,
		})
	}
	return nil
}
