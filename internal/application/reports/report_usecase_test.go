package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addProduct(t *testing.T, store *memory.Store, barcode, title string, stock, minStock int, cost, sale string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Barcode:      barcode,
		Title:        title,
		Name:         title,
		CostPrice:    dec(cost),
		SalePrice:    dec(sale),
		CurrentStock: stock,
		MinStock:     minStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func addSale(t *testing.T, store *memory.Store, productID string, quantity int, total string, at time.Time) *entity.Sale {
	t.Helper()
	s := &entity.Sale{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: dec(total),
		Subtotal:  dec(total),
		TaxAmount: decimal.Zero,
		Total:     dec(total),
		CreatedAt: at,
	}
	require.NoError(t, store.Sales().Create(context.Background(), s))
	return s
}

func TestBuildReportAgregaVentasDelPeriodo(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	ctx := context.Background()
	now := time.Now()

	p := addProduct(t, store, "7702000000011", "Pan", 50, 5, "1.00", "2.00")
	addSale(t, store, p.ID, 2, "4.00", now.Add(-2*time.Hour))
	addSale(t, store, p.ID, 1, "2.00", now.Add(-1*time.Hour))
	// Fuera de la ventana de 24h.
	addSale(t, store, p.ID, 3, "6.00", now.Add(-48*time.Hour))

	report, err := uc.BuildReport(ctx, "24h")
	require.NoError(t, err)

	assert.Equal(t, "24h", report.Period)
	assert.Equal(t, 2, report.Sales.Count)
	assert.True(t, report.Sales.Total.Equal(dec("6.00")), "total %s", report.Sales.Total)
	assert.True(t, report.Sales.Average.Equal(dec("3.00")))
	assert.Len(t, report.Sales.Items, 2)
}

func TestBuildReportPeriodoDesconocidoCaeA24h(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)

	report, err := uc.BuildReport(context.Background(), "bogus")
	require.NoError(t, err)
	assert.Equal(t, "24h", report.Period)
}

func TestBuildReportPeriodoAllIncluyeTodo(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	now := time.Now()

	p := addProduct(t, store, "7702000000028", "Leche", 10, 2, "0.80", "1.20")
	addSale(t, store, p.ID, 1, "1.20", now.Add(-90*24*time.Hour))
	addSale(t, store, p.ID, 1, "1.20", now.Add(-time.Hour))

	report, err := uc.BuildReport(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, "all", report.Period)
	assert.Equal(t, 2, report.Sales.Count)
}

func TestBuildReportTopProductosDesempataPorPrimerEncuentro(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	now := time.Now()

	a := addProduct(t, store, "7702000000035", "Arroz", 10, 2, "1.00", "2.00")
	b := addProduct(t, store, "7702000000042", "Azúcar", 10, 2, "1.00", "2.00")

	// Misma cantidad total; B tiene la venta más reciente, así que aparece
	// primero en el stream (más recientes primero) y gana el desempate.
	addSale(t, store, a.ID, 3, "6.00", now.Add(-3*time.Hour))
	addSale(t, store, b.ID, 3, "6.00", now.Add(-1*time.Hour))

	report, err := uc.BuildReport(context.Background(), "24h")
	require.NoError(t, err)
	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, b.ID, report.TopProducts[0].ProductID)
	assert.Equal(t, a.ID, report.TopProducts[1].ProductID)
}

func TestBuildReportTopProductosOrdenaPorCantidad(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	now := time.Now()

	a := addProduct(t, store, "7702000000059", "Sal", 10, 2, "0.50", "1.00")
	b := addProduct(t, store, "7702000000066", "Aceite", 10, 2, "3.00", "5.00")

	addSale(t, store, a.ID, 1, "1.00", now.Add(-2*time.Hour))
	addSale(t, store, b.ID, 5, "25.00", now.Add(-1*time.Hour))

	report, err := uc.BuildReport(context.Background(), "24h")
	require.NoError(t, err)
	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, b.ID, report.TopProducts[0].ProductID)
	assert.Equal(t, 5, report.TopProducts[0].TotalQuantity)
	assert.True(t, report.TopProducts[0].TotalRevenue.Equal(dec("25.00")))
}

func TestBuildReportBajoStockOrdenadoAscendente(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)

	addProduct(t, store, "7702000000073", "Harina", 1, 5, "1.00", "2.00")
	addProduct(t, store, "7702000000080", "Avena", 4, 5, "1.00", "2.00")
	addProduct(t, store, "7702000000097", "Lenteja", 50, 5, "1.00", "2.00") // por encima del umbral

	report, err := uc.BuildReport(context.Background(), "24h")
	require.NoError(t, err)
	require.Len(t, report.LowStock, 2)
	assert.Equal(t, "Harina", report.LowStock[0].Title)
	assert.Equal(t, "Avena", report.LowStock[1].Title)
}

func TestBuildReportResumenValoraAPrecioDeVenta(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)

	addProduct(t, store, "7702000000103", "Café", 10, 2, "4.00", "6.50")
	addProduct(t, store, "7702000000110", "Té", 5, 2, "2.00", "3.00")

	report, err := uc.BuildReport(context.Background(), "24h")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.TotalProducts)
	assert.Equal(t, 15, report.Summary.TotalStock)
	// 10*6.50 + 5*3.00
	assert.True(t, report.Summary.TotalValue.Equal(dec("80.00")), "valor %s", report.Summary.TotalValue)
}

func TestStatsSnapshotVentanaDeHoyYValorACosto(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	p := addProduct(t, store, "7702000000127", "Café", 10, 20, "4.00", "6.50")
	addSale(t, store, p.ID, 2, "13.00", todayStart.Add(time.Minute))
	// Ayer: fuera de la ventana de hoy.
	addSale(t, store, p.ID, 9, "58.50", todayStart.Add(-time.Minute))

	stats, err := uc.StatsSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockCount)
	// 10 * costo 4.00, no precio de venta.
	assert.True(t, stats.InventoryValue.Equal(dec("40.00")), "valor %s", stats.InventoryValue)
	assert.Equal(t, 1, stats.TodaySales.Count)
	assert.Equal(t, 2, stats.TodaySales.Quantity)
	assert.True(t, stats.TodaySales.Total.Equal(dec("13.00")))
}

// TestReporteTrasCicloCompleto recorre el ciclo alta → venta → venta fallida
// → reposición y verifica el reporte resultante de punta a punta.
func TestReporteTrasCicloCompleto(t *testing.T) {
	store := memory.NewStore()
	eng := engine.New(store, store.Products(), store.Movements(), store.Sales())
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), nil)
	ctx := context.Background()

	p, err := eng.CreateProduct(ctx, dto.CreateProductRequest{
		Barcode:      "123",
		Title:        "Refresco",
		Name:         "Refresco cola 600ml",
		CostPrice:    dec("1.00"),
		SalePrice:    dec("2.00"),
		TaxRate:      dec("16"),
		CurrentStock: 10,
		MinStock:     2,
	})
	require.NoError(t, err)

	_, sale, err := eng.SellStock(ctx, engine.SellStockInput{Ref: "123", Quantity: 3})
	require.NoError(t, err)
	require.True(t, sale.Total.Equal(dec("6.96")))

	_, _, err = eng.SellStock(ctx, engine.SellStockInput{Ref: "123", Quantity: 100})
	require.Error(t, err)

	price := dec("1.20")
	updated, _, err := eng.AddStock(ctx, engine.AddStockInput{Ref: "123", Quantity: 5, UnitPrice: &price})
	require.NoError(t, err)
	require.Equal(t, 12, updated.CurrentStock)

	report, err := uc.BuildReport(ctx, "all")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sales.Count)
	assert.True(t, report.Sales.Total.Equal(dec("6.96")), "total %s", report.Sales.Total)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, p.ID, report.TopProducts[0].ProductID)
	assert.Equal(t, 3, report.TopProducts[0].TotalQuantity)
	assert.True(t, report.TopProducts[0].TotalRevenue.Equal(dec("6.96")))
	assert.Empty(t, report.LowStock)
	assert.Equal(t, 12, report.Summary.TotalStock)
	assert.True(t, report.Summary.TotalValue.Equal(dec("24.00")))
}

type fakeCache struct {
	stats   *dto.StatsResponse
	setTTL  time.Duration
	setHits int
}

func (c *fakeCache) GetStats(context.Context) (*dto.StatsResponse, bool, error) {
	if c.stats != nil {
		return c.stats, true, nil
	}
	return nil, false, nil
}

func (c *fakeCache) SetStats(_ context.Context, stats *dto.StatsResponse, ttl time.Duration) error {
	c.stats = stats
	c.setTTL = ttl
	c.setHits++
	return nil
}

func TestStatsSnapshotUsaCache(t *testing.T) {
	store := memory.NewStore()
	cache := &fakeCache{}
	uc := reports.NewReportUseCase(store.Sales(), store.Reports(), cache)
	ctx := context.Background()

	addProduct(t, store, "7702000000134", "Café", 10, 2, "4.00", "6.50")

	first, err := uc.StatsSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setHits)
	assert.Equal(t, 30*time.Second, cache.setTTL)

	// Cambio posterior: el snapshot cacheado sigue sirviéndose hasta expirar.
	addProduct(t, store, "7702000000141", "Té", 5, 2, "2.00", "3.00")
	second, err := uc.StatsSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.TotalProducts, second.TotalProducts)
	assert.Equal(t, 1, cache.setHits)
}
