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

// CategoryUseCase CRUD de categorías. La eliminación se bloquea mientras
// algún producto referencie la categoría.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create crea una categoría. Nombre duplicado → ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.categoryRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, dto.NewCategoryResponse(c))
	}
	return items, nil
}

// Update renombra o edita una categoría; el nombre sigue siendo único.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != category.Name {
		existing, err := uc.categoryRepo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	category.Name = in.Name
	category.Description = in.Description
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

// Delete elimina la categoría si ningún producto la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(ctx, id)
}
