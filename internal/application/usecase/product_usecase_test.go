package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T) (*memory.Store, *engine.Engine, *usecase.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	eng := engine.New(store, store.Products(), store.Movements(), store.Sales())
	uc := usecase.NewProductUseCase(store.Products(), store.Movements(), store.Sales())
	return store, eng, uc
}

func createProduct(t *testing.T, eng *engine.Engine, barcode string, stock int) *entity.Product {
	t.Helper()
	p, err := eng.CreateProduct(context.Background(), dto.CreateProductRequest{
		Barcode:   barcode,
		Title:     "Galletas",
		Name:      "Galletas surtidas 200g",
		CostPrice: dec("1.50"),
		SalePrice: dec("2.50"),
		TaxRate:   dec("16"),

		CurrentStock: stock,
		MinStock:     2,
	})
	require.NoError(t, err)
	return p
}

func TestProductGetPorIDYBarcode(t *testing.T) {
	_, eng, uc := newFixture(t)
	ctx := context.Background()
	p := createProduct(t, eng, "7703000000012", 0)

	byID, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Barcode, byID.Barcode)

	byBarcode, err := uc.Get(ctx, p.Barcode)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byBarcode.ID)

	_, err = uc.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListConBusquedaYPaginacion(t *testing.T) {
	_, eng, uc := newFixture(t)
	ctx := context.Background()

	createProduct(t, eng, "7703000000029", 0)
	createProduct(t, eng, "7703000000036", 0)
	createProduct(t, eng, "8800000000000", 0)

	out, err := uc.List(ctx, dto.ListProductsRequest{Search: "7703"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Len(t, out.Products, 2)

	paged, err := uc.List(ctx, dto.ListProductsRequest{PageRequest: dto.PageRequest{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, paged.Total)
	assert.Len(t, paged.Products, 1)
	assert.Equal(t, 2, paged.TotalPages)
}

func TestProductUpdateNoTocaBarcodeNiStock(t *testing.T) {
	store, eng, uc := newFixture(t)
	ctx := context.Background()
	p := createProduct(t, eng, "7703000000043", 8)

	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{
		Title:     "Galletas XL",
		Name:      "Galletas surtidas 400g",
		CostPrice: dec("2.00"),
		SalePrice: dec("3.50"),
		TaxRate:   dec("16"),
		MinStock:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Galletas XL", out.Title)
	assert.Equal(t, p.Barcode, out.Barcode)

	stored, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.CurrentStock)
}

func TestProductDeleteSinHistorial(t *testing.T) {
	_, eng, uc := newFixture(t)
	ctx := context.Background()
	p := createProduct(t, eng, "7703000000050", 0)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err := uc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDeleteBloqueadoConHistorial(t *testing.T) {
	_, eng, uc := newFixture(t)
	ctx := context.Background()

	// Con movimiento de stock inicial.
	conMovimiento := createProduct(t, eng, "7703000000067", 5)
	err := uc.Delete(ctx, conMovimiento.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con venta registrada.
	conVenta := createProduct(t, eng, "7703000000074", 0)
	_, _, err = eng.AddStock(ctx, engine.AddStockInput{Ref: conVenta.ID, Quantity: 2})
	require.NoError(t, err)
	_, _, err = eng.SellStock(ctx, engine.SellStockInput{Ref: conVenta.ID, Quantity: 1})
	require.NoError(t, err)
	err = uc.Delete(ctx, conVenta.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
