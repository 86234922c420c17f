// Package engine implementa el motor de transacciones de stock y ventas:
// las operaciones que mutan inventario y producen el libro auditable de
// movimientos, bajo la invariante de que el stock actual de un producto
// siempre coincide con la suma de sus movimientos.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// DefaultRecentWindow cantidad de movimientos/ventas recientes que devuelve
// LookupByBarcode cuando no se configura otra.
const DefaultRecentWindow = 5

// Engine orquesta las operaciones transaccionales sobre productos, stock y
// ventas. Toda mutación multi-fila pasa por el TxRunner con bloqueo de fila
// (SELECT FOR UPDATE), de modo que la verificación de stock y el decremento
// son atómicos por producto.
type Engine struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	saleRepo     repository.SaleRepository
	observer     Observer
	recentWindow int
}

// Option configura el Engine.
type Option func(*Engine)

// WithObserver inyecta el observador de operaciones.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithRecentWindow fija cuántos movimientos/ventas recientes devuelve el lookup.
func WithRecentWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recentWindow = n
		}
	}
}

// New construye el motor.
func New(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		observer:     NopObserver(),
		recentWindow: DefaultRecentWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// observe emite el evento de la operación al observador inyectado.
func (e *Engine) observe(operation string, start time.Time, err error) {
	e.observer.ObserveOperation(operation, outcomeOf(err), time.Since(start))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// resolveForUpdate busca el producto por ID y luego por código de barras
// (ambos call sites del sistema usan la misma referencia), bloqueando la fila.
// Solo debe llamarse dentro de una transacción del TxRunner.
func resolveForUpdate(ctx context.Context, productRepo repository.ProductRepository, ref string) (*entity.Product, error) {
	product, err := productRepo.GetByIDForUpdate(ctx, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = productRepo.GetByBarcodeForUpdate(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
