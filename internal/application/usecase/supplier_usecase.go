package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores. Misma regla que categorías: no se
// elimina un proveedor mientras algún producto lo referencie.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, productRepo: productRepo}
}

// Create crea un proveedor. Nombre duplicado → ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := uc.supplierRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	resp := dto.NewSupplierResponse(supplier)
	return &resp, nil
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		items = append(items, dto.NewSupplierResponse(s))
	}
	return items, nil
}

// Update edita un proveedor; el nombre sigue siendo único.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != supplier.Name {
		existing, err := uc.supplierRepo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	supplier.Name = in.Name
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	resp := dto.NewSupplierResponse(supplier)
	return &resp, nil
}

// Delete elimina el proveedor si ningún producto lo referencia.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.supplierRepo.Delete(ctx, id)
}
