package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine     *engine.Engine
	ProductUC  *usecase.ProductUseCase
	SaleUC     *usecase.SaleUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	ReportUC   *reports.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Engine)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/check", productHandler.Check)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", productHandler.AddStock)
	products.Post("/:id/sell", productHandler.Sell)

	// Stock (flujo de escaneo)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Engine)
	stock.Post("/add", stockHandler.Add)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Engine, deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports", reportHandler.Report)
	api.Get("/stats", reportHandler.Stats)
}
