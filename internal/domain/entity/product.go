package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto identificado por su código de barras.
// CurrentStock es una caché materializada de la suma de sus StockMovements;
// el motor de transacciones actualiza ambos en la misma transacción.
type Product struct {
	ID           string
	Barcode      string // código de barras, único e inmutable
	Title        string // etiqueta corta (tiquete)
	Name         string // nombre completo
	Description  string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	TaxRate      decimal.Decimal // porcentaje 0–100 (ej. IVA 16)
	CurrentStock int
	MinStock     int    // umbral de reorden
	CategoryID   string // vacío si no tiene categoría
	SupplierID   string // vacío si no tiene proveedor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o bajo su umbral de reorden.
func (p *Product) LowStock() bool {
	return p.CurrentStock <= p.MinStock
}
