// Package sales contiene la calculadora monetaria de ventas (servicio de dominio puro).
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain"
)

// Amounts agrupa los montos de una línea de venta.
// Invariante: Subtotal + TaxAmount == Total (exacto, sin re-redondeo).
type Amounts struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// SaleAmounts calcula subtotal, impuesto y total de una venta.
// Subtotal = cantidad * precio; TaxAmount = Subtotal * tasa / 100.
// Política de redondeo única: half-up a 2 decimales en el momento del cálculo.
// Los montos se almacenan tal como se calculan y nunca se re-derivan.
func SaleAmounts(quantity int, unitPrice, taxRatePercent decimal.Decimal) (Amounts, error) {
	if quantity <= 0 {
		return Amounts{}, domain.ErrInvalidInput
	}
	if unitPrice.IsNegative() {
		return Amounts{}, domain.ErrInvalidInput
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(hundred) {
		return Amounts{}, domain.ErrInvalidInput
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	taxAmount := subtotal.Mul(taxRatePercent).Div(hundred).Round(2)
	// Total se suma sobre los montos ya redondeados para que la igualdad
	// Subtotal + TaxAmount == Total se cumpla centavo a centavo.
	total := subtotal.Add(taxAmount)

	return Amounts{Subtotal: subtotal, TaxAmount: taxAmount, Total: total}, nil
}

// StockValue calcula el valor de una cantidad en stock a un precio unitario,
// redondeado a 2 decimales. La cantidad puede ser negativa (movimientos de salida).
func StockValue(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
