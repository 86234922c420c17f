package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/memory"
)

func TestSupplierCRUDYNombreUnico(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.SupplierRequest{Name: "Distribuidora Norte", Email: "ventas@norte.example"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "Distribuidora Norte"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, created.ID, dto.SupplierRequest{Name: "Distribuidora Norte", Phone: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", updated.Phone)

	require.NoError(t, uc.Delete(ctx, created.ID))
}

func TestSupplierDeleteBloqueadoConProductos(t *testing.T) {
	store := memory.NewStore()
	eng := engine.New(store, store.Products(), store.Movements(), store.Sales())
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Products())
	ctx := context.Background()

	supplier, err := uc.Create(ctx, dto.SupplierRequest{Name: "Lácteos del Valle"})
	require.NoError(t, err)

	_, err = eng.CreateProduct(ctx, dto.CreateProductRequest{
		Barcode:    "7704000000028",
		Title:      "Leche",
		Name:       "Leche entera 1L",
		CostPrice:  dec("0.80"),
		SalePrice:  dec("1.20"),
		SupplierID: supplier.ID,
	})
	require.NoError(t, err)

	err = uc.Delete(ctx, supplier.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
