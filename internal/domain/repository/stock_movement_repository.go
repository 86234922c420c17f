package repository

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos (DIP).
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListRecentByProduct devuelve los movimientos más recientes primero.
	ListRecentByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error)
	// SumQuantityByProduct suma las cantidades con signo de todos los
	// movimientos del producto (para reconciliar contra CurrentStock).
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
