package usecase

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ProductUseCase lecturas y ediciones de atributos de productos. El stock y
// las ventas se manejan exclusivamente vía el motor de transacciones.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	saleRepo     repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo, saleRepo: saleRepo}
}

// Get obtiene un producto por ID o código de barras.
func (uc *ProductUseCase) Get(ctx context.Context, ref string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = uc.productRepo.GetByBarcode(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// List lista productos con búsqueda, filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		SupplierID: in.SupplierID,
		SortBy:     in.SortBy,
		SortDesc:   in.SortOrder != "asc",
		Limit:      in.Limit,
		Offset:     in.Offset(),
	}
	products, total, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:   items,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}, nil
}

// Update edita atributos del producto. No toca Barcode (inmutable) ni
// CurrentStock (solo vía movimientos). Acepta ID o código de barras.
func (uc *ProductUseCase) Update(ctx context.Context, ref string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = uc.productRepo.GetByBarcode(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Title = in.Title
	product.Name = in.Name
	product.Description = in.Description
	product.CostPrice = in.CostPrice
	product.SalePrice = in.SalePrice
	product.TaxRate = in.TaxRate
	product.MinStock = in.MinStock
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Delete elimina un producto solo si el libro no lo referencia: con ventas o
// movimientos registrados la eliminación se bloquea con ErrConflict para no
// dejar filas huérfanas en el libro.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	saleCount, err := uc.saleRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	movCount, err := uc.movementRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if saleCount > 0 || movCount > 0 {
		return domain.ErrConflict
	}

	return uc.productRepo.Delete(ctx, product.ID)
}
