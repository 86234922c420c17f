package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeEntry      = "ENTRY"      // entrada de mercancía
	MovementTypeSale       = "SALE"       // salida por venta
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
)

// StockMovement es un registro inmutable del libro de movimientos (append-only).
// Quantity es positivo para entradas y negativo para ventas; TotalValue lleva
// el mismo signo que Quantity.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string // ENTRY, SALE, ADJUSTMENT
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	CreatedBy  string // identidad del actor, opcional
}
