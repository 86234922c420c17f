package repository

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
