package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSaleItem línea de venta dentro del reporte.
type ReportSaleItem struct {
	ID           string          `json:"id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TopProduct producto más vendido (por cantidad) en la ventana del reporte.
type TopProduct struct {
	ProductID     string          `json:"product_id"`
	ProductTitle  string          `json:"product_title"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// LowStockItem producto en o bajo su umbral de reorden.
type LowStockItem struct {
	ProductID    string `json:"product_id"`
	Title        string `json:"title"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

// ReportSummary totales instantáneos del inventario (sin ventana: los niveles
// de stock no tienen semántica de período). Valorados a precio de venta.
type ReportSummary struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ReportSales métricas de ventas dentro de la ventana.
type ReportSales struct {
	Total   decimal.Decimal  `json:"total"`
	Count   int              `json:"count"`
	Average decimal.Decimal  `json:"average"`
	Items   []ReportSaleItem `json:"items"`
}

// ReportResponse salida de GET /api/reports?period=...
type ReportResponse struct {
	Period      string         `json:"period"`
	Sales       ReportSales    `json:"sales"`
	TopProducts []TopProduct   `json:"top_products"`
	LowStock    []LowStockItem `json:"low_stock"`
	Summary     ReportSummary  `json:"summary"`
}

// TodaySalesDTO ventas del día (medianoche a medianoche local).
type TodaySalesDTO struct {
	Total    decimal.Decimal `json:"total"`
	Quantity int             `json:"quantity"`
	Count    int             `json:"count"`
}

// StatsResponse salida de GET /api/stats. InventoryValue va a precio de costo
// (valor de liquidación), distinto del reporte que valora a precio de venta.
type StatsResponse struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TodaySales     TodaySalesDTO   `json:"today_sales"`
}
