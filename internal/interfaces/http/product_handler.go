package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	engine *engine.Engine
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, eng *engine.Engine) *ProductHandler {
	return &ProductHandler{uc: uc, engine: eng}
}

// Create godoc
// @Summary      Crear producto (con stock de apertura opcional)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	product, err := h.engine.CreateProduct(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search       query  string  false  "Busca en barcode, title y name"
// @Param        category_id  query  string  false  "Filtro por categoría"
// @Param        supplier_id  query  string  false  "Filtro por proveedor"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ListProductsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Consultar producto por código de barras (flujo de escaneo)
// @Description  Exists=false indica que el código no está registrado; la UI abre el alta.
// @Tags         products
// @Produce      json
// @Param        barcode  query  string  true  "Código de barras"
// @Success      200  {object}  dto.CheckProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/check [get]
func (h *ProductHandler) Check(c *fiber.Ctx) error {
	barcode := c.Query("barcode")
	if barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode es requerido"})
	}
	result, err := h.engine.LookupByBarcode(c.Context(), barcode)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !result.Found {
		return c.JSON(dto.CheckProductResponse{Exists: false})
	}
	product := dto.NewProductResponse(result.Product)
	movements := make([]dto.MovementResponse, 0, len(result.RecentMovements))
	for _, m := range result.RecentMovements {
		movements = append(movements, dto.NewMovementResponse(m))
	}
	sales := make([]dto.SaleResponse, 0, len(result.RecentSales))
	for _, s := range result.RecentSales {
		sales = append(sales, dto.NewSaleResponse(s))
	}
	return c.JSON(dto.CheckProductResponse{
		Exists:          true,
		Product:         &product,
		RecentMovements: movements,
		RecentSales:     sales,
	})
}

// Get godoc
// @Summary      Obtener producto por ID o código de barras
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID o código de barras"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar atributos del producto (no barcode ni stock)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID o código de barras"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (bloqueado si tiene ventas o movimientos)
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddStock godoc
// @Summary      Registrar entrada de stock por ID de producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID o código de barras"
// @Param        body  body  dto.AddStockByIDRequest  true  "Cantidad y precio opcional"
// @Success      200   {object}  dto.AddStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockByIDRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	product, movement, err := h.engine.AddStock(c.Context(), engine.AddStockInput{
		Ref:       c.Params("id"),
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

// Sell godoc
// @Summary      Registrar venta por ID de producto (precio explícito opcional)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID o código de barras"
// @Param        body  body  dto.SellByIDRequest  true  "Cantidad y precio opcional"
// @Success      200   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sell [post]
func (h *ProductHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellByIDRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	product, sale, err := h.engine.SellStock(c.Context(), engine.SellStockInput{
		Ref:       c.Params("id"),
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.CreateSaleResponse{
		Sale:     dto.NewSaleResponse(sale),
		Product:  dto.NewProductResponse(product),
		NewStock: product.CurrentStock,
	})
}
