package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListLowStock devuelve productos con current_stock <= min_stock, ordenados
// por stock ascendente.
func (r *ReportRepo) ListLowStock(ctx context.Context, limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT id, title, current_stock, min_stock
		FROM products WHERE current_stock <= min_stock
		ORDER BY current_stock ASC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Title, &row.CurrentStock, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountLowStock cuenta los productos en o bajo su umbral de reorden.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE current_stock <= min_stock`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// GetInventorySummary totales del inventario valorados a precio de venta.
func (r *ReportRepo) GetInventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(SUM(current_stock), 0),
		       COALESCE(SUM(current_stock * sale_price), 0)
		FROM products`,
	).Scan(&s.TotalProducts, &s.TotalStock, &s.TotalValue)
	if err != nil {
		return repository.InventorySummary{}, fmt.Errorf("inventory summary: %w", err)
	}
	return s, nil
}

// GetInventoryValueAtCost valor del inventario a precio de costo.
func (r *ReportRepo) GetInventoryValueAtCost(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_stock * cost_price), 0) FROM products`,
	).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value at cost: %w", err)
	}
	return value, nil
}

// GetSalesBetween totales de ventas en [start, end).
func (r *ReportRepo) GetSalesBetween(ctx context.Context, start, end time.Time) (repository.TodaySales, error) {
	var t repository.TodaySales
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(quantity), 0), count(*)
		FROM sales WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&t.Total, &t.Quantity, &t.Count)
	if err != nil {
		return repository.TodaySales{}, fmt.Errorf("sales between: %w", err)
	}
	return t, nil
}
