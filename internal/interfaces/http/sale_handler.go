package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
)

// SaleHandler maneja el registro y el historial de ventas.
type SaleHandler struct {
	engine *engine.Engine
	uc     *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(eng *engine.Engine, uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{engine: eng, uc: uc}
}

// Create godoc
// @Summary      Registrar venta por código de barras (al precio de venta vigente)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Código y cantidad"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	product, sale, err := h.engine.SellStock(c.Context(), engine.SellStockInput{
		Ref:      in.Barcode,
		Quantity: in.Quantity,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{
		Sale:     dto.NewSaleResponse(sale),
		Product:  dto.NewProductResponse(product),
		NewStock: product.CurrentStock,
	})
}

// List godoc
// @Summary      Historial de ventas con rango de fechas opcional
// @Tags         sales
// @Produce      json
// @Param        start_date  query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.ListSalesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
