package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste el libro de movimientos (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. El libro no tiene Update ni Delete.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_price, total_value, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.UnitPrice, movement.TotalValue, movement.Notes, movement.CreatedAt,
		nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListRecentByProduct devuelve los últimos movimientos del producto, más
// recientes primero.
func (r *StockMovementRepo) ListRecentByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, unit_price, total_value, notes, created_at, created_by
		FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitPrice,
			&m.TotalValue, &m.Notes, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumQuantityByProduct suma las cantidades con signo del producto.
func (r *StockMovementRepo) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

// CountByProduct cuenta los movimientos del producto.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}
