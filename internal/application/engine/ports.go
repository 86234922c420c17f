package engine

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor: o todas
// las escrituras del callback quedan visibles, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Observer recibe un evento estructurado por cada operación del motor
// (nombre, resultado, duración). Desacopla la observabilidad de la lógica.
type Observer interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, time.Duration) {}

// NopObserver devuelve un observador que descarta todos los eventos.
func NopObserver() Observer { return nopObserver{} }
