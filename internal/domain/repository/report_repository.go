package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow fila del listado de bajo stock (currentStock <= minStock).
type LowStockRow struct {
	ProductID    string
	Title        string
	CurrentStock int
	MinStock     int
}

// InventorySummary totales instantáneos del inventario, valorados a precio
// de venta (valor comercial).
type InventorySummary struct {
	TotalProducts int
	TotalStock    int
	TotalValue    decimal.Decimal
}

// TodaySales totales de ventas de un día (medianoche a medianoche local).
type TodaySales struct {
	Total    decimal.Decimal
	Quantity int
	Count    int
}

// ReportRepository define las consultas de solo lectura para reportes.
// Las implementaciones no modifican datos; pueden leer con aislamiento débil
// (la obsolescencia en cifras de reporte es aceptable).
type ReportRepository interface {
	// ListLowStock devuelve productos con currentStock <= minStock,
	// ordenados por stock ascendente, hasta limit filas.
	ListLowStock(ctx context.Context, limit int) ([]LowStockRow, error)
	CountLowStock(ctx context.Context) (int, error)
	// GetInventorySummary valora el stock a precio de venta.
	GetInventorySummary(ctx context.Context) (InventorySummary, error)
	// GetInventoryValueAtCost valora el stock a precio de costo (valor de
	// liquidación). Base de valoración distinta a GetInventorySummary,
	// deliberadamente: responden preguntas de negocio diferentes.
	GetInventoryValueAtCost(ctx context.Context) (decimal.Decimal, error)
	GetSalesBetween(ctx context.Context, start, end time.Time) (TodaySales, error)
}
