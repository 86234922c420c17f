package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	domainsales "github.com/tu-usuario/pos-inventario/internal/domain/sales"
)

var hundred = decimal.NewFromInt(100)

// CreateProduct crea un producto y, si trae stock de apertura, registra el
// movimiento ENTRY inicial en la misma transacción: o ambas filas quedan
// visibles, o ninguna. Código de barras duplicado → ErrDuplicate (la carrera
// entre dos altas concurrentes la resuelve el índice único del storage).
func (e *Engine) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (product *entity.Product, err error) {
	start := time.Now()
	defer func() { e.observe("create_product", start, err) }()

	if in.Barcode == "" || in.Title == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := e.productRepo.GetByBarcode(ctx, in.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product = &entity.Product{
		ID:           uuid.New().String(),
		Barcode:      in.Barcode,
		Title:        in.Title,
		Name:         in.Name,
		Description:  in.Description,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		TaxRate:      in.TaxRate,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.SaleRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.CurrentStock == 0 {
			return nil
		}
		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Type:       entity.MovementTypeEntry,
			Quantity:   product.CurrentStock,
			UnitPrice:  product.CostPrice,
			TotalValue: domainsales.StockValue(product.CurrentStock, product.CostPrice),
			Notes:      "Stock inicial",
			CreatedAt:  now,
		}
		return movementRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
