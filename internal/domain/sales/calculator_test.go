package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/sales"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestSaleAmounts_VentaConIVA valida el caso de referencia del flujo de caja:
// 3 unidades a 2.00 con IVA 16% → subtotal 6.00, impuesto 0.96, total 6.96.
func TestSaleAmounts_VentaConIVA(t *testing.T) {
	amounts, err := sales.SaleAmounts(3, dec("2.00"), dec("16"))
	require.NoError(t, err)

	assert.True(t, dec("6.00").Equal(amounts.Subtotal), "subtotal: %s", amounts.Subtotal)
	assert.True(t, dec("0.96").Equal(amounts.TaxAmount), "impuesto: %s", amounts.TaxAmount)
	assert.True(t, dec("6.96").Equal(amounts.Total), "total: %s", amounts.Total)
}

func TestSaleAmounts_SinImpuesto(t *testing.T) {
	amounts, err := sales.SaleAmounts(5, dec("1.20"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, dec("6.00").Equal(amounts.Subtotal))
	assert.True(t, amounts.TaxAmount.IsZero())
	assert.True(t, dec("6.00").Equal(amounts.Total))
}

// TestSaleAmounts_RedondeoHalfUp cubre fracciones de centavo: el impuesto se
// redondea half-up a 2 decimales en el momento del cálculo, no al mostrar.
func TestSaleAmounts_RedondeoHalfUp(t *testing.T) {
	// 1 × 1.99 al 16%: impuesto crudo 0.3184 → 0.32
	amounts, err := sales.SaleAmounts(1, dec("1.99"), dec("16"))
	require.NoError(t, err)
	assert.True(t, dec("0.32").Equal(amounts.TaxAmount), "impuesto: %s", amounts.TaxAmount)
	assert.True(t, dec("2.31").Equal(amounts.Total))

	// 3 × 0.35 al 5%: impuesto crudo 0.0525 → 0.05
	amounts, err = sales.SaleAmounts(3, dec("0.35"), dec("5"))
	require.NoError(t, err)
	assert.True(t, dec("1.05").Equal(amounts.Subtotal))
	assert.True(t, dec("0.05").Equal(amounts.TaxAmount), "impuesto: %s", amounts.TaxAmount)
}

// TestSaleAmounts_SumaCuadra verifica la propiedad Subtotal+TaxAmount==Total
// sobre una rejilla de cantidades, precios y tasas.
func TestSaleAmounts_SumaCuadra(t *testing.T) {
	prices := []string{"0.01", "0.99", "2.00", "17.35", "999.99"}
	rates := []string{"0", "5", "16", "19", "33.33", "100"}

	for _, p := range prices {
		for _, r := range rates {
			for _, q := range []int{1, 3, 7, 250} {
				amounts, err := sales.SaleAmounts(q, dec(p), dec(r))
				require.NoError(t, err)
				assert.True(t, amounts.Subtotal.Add(amounts.TaxAmount).Equal(amounts.Total),
					"q=%d p=%s r=%s: %s + %s != %s", q, p, r,
					amounts.Subtotal, amounts.TaxAmount, amounts.Total)
			}
		}
	}
}

func TestSaleAmounts_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		price    string
		rate     string
	}{
		{"cantidad cero", 0, "2.00", "16"},
		{"cantidad negativa", -1, "2.00", "16"},
		{"precio negativo", 1, "-0.01", "16"},
		{"tasa negativa", 1, "2.00", "-1"},
		{"tasa mayor a 100", 1, "2.00", "100.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sales.SaleAmounts(tc.quantity, dec(tc.price), dec(tc.rate))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestStockValue(t *testing.T) {
	assert.True(t, dec("10.00").Equal(sales.StockValue(10, dec("1.00"))))
	assert.True(t, dec("6.00").Equal(sales.StockValue(5, dec("1.20"))))
	// Las salidas llevan cantidad negativa y el valor conserva el signo.
	assert.True(t, dec("-6.96").Equal(sales.StockValue(-3, dec("2.32"))))
	assert.True(t, sales.StockValue(0, dec("99.99")).IsZero())
}
