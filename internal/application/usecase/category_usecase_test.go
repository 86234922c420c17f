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

func TestCategoryCRUDYNombreUnico(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store.Categories(), store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, created.ID, dto.CategoryRequest{Name: "Bebidas frías", Description: "Neveras"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas frías", updated.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryDeleteBloqueadoConProductos(t *testing.T) {
	store := memory.NewStore()
	eng := engine.New(store, store.Products(), store.Movements(), store.Sales())
	uc := usecase.NewCategoryUseCase(store.Categories(), store.Products())
	ctx := context.Background()

	category, err := uc.Create(ctx, dto.CategoryRequest{Name: "Abarrotes"})
	require.NoError(t, err)

	_, err = eng.CreateProduct(ctx, dto.CreateProductRequest{
		Barcode:    "7704000000011",
		Title:      "Arroz",
		Name:       "Arroz blanco 1kg",
		CostPrice:  dec("1.00"),
		SalePrice:  dec("1.80"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	err = uc.Delete(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
