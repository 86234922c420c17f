package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	domainsales "github.com/tu-usuario/pos-inventario/internal/domain/sales"
)

// AddStockInput entrada para registrar una entrada de mercancía.
// Ref resuelve por ID y luego por código de barras. UnitPrice nil usa el
// costo vigente del producto.
type AddStockInput struct {
	Ref       string
	Quantity  int
	UnitPrice *decimal.Decimal
	Notes     string
	CreatedBy string
}

// SellStockInput entrada para registrar una venta. UnitPrice nil vende al
// precio de venta vigente; el precio aplicado queda congelado en la venta.
type SellStockInput struct {
	Ref       string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// AddStock suma unidades al producto y registra el movimiento ENTRY, todo en
// una transacción con la fila del producto bloqueada.
func (e *Engine) AddStock(ctx context.Context, in AddStockInput) (product *entity.Product, movement *entity.StockMovement, err error) {
	start := time.Now()
	defer func() { e.observe("add_stock", start, err) }()

	if in.Ref == "" || in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.SaleRepository,
	) error {
		p, err := resolveForUpdate(ctx, productRepo, in.Ref)
		if err != nil {
			return err
		}

		unitPrice := p.CostPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		notes := in.Notes
		if notes == "" {
			notes = "Entrada de stock"
		}

		now := time.Now()
		newStock := p.CurrentStock + in.Quantity
		if err := productRepo.UpdateStock(ctx, p.ID, newStock, now); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			ProductID:  p.ID,
			Type:       entity.MovementTypeEntry,
			Quantity:   in.Quantity,
			UnitPrice:  unitPrice,
			TotalValue: domainsales.StockValue(in.Quantity, unitPrice),
			Notes:      notes,
			CreatedAt:  now,
			CreatedBy:  in.CreatedBy,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.CurrentStock = newStock
		p.UpdatedAt = now
		product, movement = p, mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// SellStock registra una venta: verifica el stock disponible, lo decrementa,
// calcula los montos con la tasa de impuesto del producto y guarda la venta
// junto con su movimiento SALE (cantidad y valor negativos). La verificación
// y el decremento ocurren con la fila bloqueada dentro de la misma
// transacción, de modo que dos ventas concurrentes no pueden sobrevender.
func (e *Engine) SellStock(ctx context.Context, in SellStockInput) (product *entity.Product, sale *entity.Sale, err error) {
	start := time.Now()
	defer func() { e.observe("sell_stock", start, err) }()

	if in.Ref == "" || in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		p, err := resolveForUpdate(ctx, productRepo, in.Ref)
		if err != nil {
			return err
		}
		if in.Quantity > p.CurrentStock {
			return &domain.StockShortageError{Available: p.CurrentStock, Requested: in.Quantity}
		}

		unitPrice := p.SalePrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		amounts, err := domainsales.SaleAmounts(in.Quantity, unitPrice, p.TaxRate)
		if err != nil {
			return err
		}

		now := time.Now()
		newStock := p.CurrentStock - in.Quantity
		if err := productRepo.UpdateStock(ctx, p.ID, newStock, now); err != nil {
			return err
		}

		s := &entity.Sale{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  amounts.Subtotal,
			TaxAmount: amounts.TaxAmount,
			Total:     amounts.Total,
			CreatedAt: now,
		}
		if err := saleRepo.Create(ctx, s); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			ProductID:  p.ID,
			Type:       entity.MovementTypeSale,
			Quantity:   -in.Quantity,
			UnitPrice:  unitPrice,
			TotalValue: amounts.Total.Neg(),
			Notes:      "Venta - " + s.ID,
			CreatedAt:  now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.CurrentStock = newStock
		p.UpdatedAt = now
		product, sale = p, s
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, sale, nil
}
