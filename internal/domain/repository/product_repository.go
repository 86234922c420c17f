package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search     string // busca en barcode, title y name (insensible a mayúsculas)
	CategoryID string
	SupplierID string
	SortBy     string // created_at, title, current_stock...
	SortDesc   bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetByIDForUpdate y GetByBarcodeForUpdate bloquean la fila (SELECT FOR UPDATE);
	// solo tienen sentido dentro de una transacción del TxRunner.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.Product, error)
	// UpdateStock fija el stock materializado; el movimiento que lo justifica
	// debe crearse en la misma transacción.
	UpdateStock(ctx context.Context, id string, newStock int, updatedAt time.Time) error
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
