package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
)

// StockHandler maneja las entradas de stock del flujo de escaneo.
type StockHandler struct {
	engine *engine.Engine
}

// NewStockHandler construye el handler.
func NewStockHandler(eng *engine.Engine) *StockHandler {
	return &StockHandler{engine: eng}
}

// Add godoc
// @Summary      Registrar entrada de stock por código de barras
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "Código, cantidad y precio opcional"
// @Success      200   {object}  dto.AddStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	product, movement, err := h.engine.AddStock(c.Context(), engine.AddStockInput{
		Ref:       in.Barcode,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AddStockResponse{
		Product:  dto.NewProductResponse(product),
		Movement: dto.NewMovementResponse(movement),
		NewStock: product.CurrentStock,
	})
}
