package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el registro inmutable de una venta completada. Va emparejada 1:1
// con un StockMovement de tipo SALE del mismo producto y cantidad.
// Invariante: Subtotal + TaxAmount == Total.
type Sale struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal // precio al momento de la venta (snapshot)
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
