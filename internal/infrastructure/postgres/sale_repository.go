package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persiste las ventas (inmutables: solo insert y lecturas).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, unit_price, subtotal, tax_amount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.Quantity, sale.UnitPrice,
		sale.Subtotal, sale.TaxAmount, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListRecentByProduct devuelve las últimas ventas del producto, más recientes primero.
func (r *SaleRepo) ListRecentByProduct(ctx context.Context, productID string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, subtotal, tax_amount, total, created_at
		FROM sales WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice,
			&s.Subtotal, &s.TaxAmount, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

const saleWithProductQuery = `
	SELECT s.id, s.product_id, s.quantity, s.unit_price, s.subtotal, s.tax_amount, s.total, s.created_at,
	       p.barcode, p.title, p.name
	FROM sales s
	JOIN products p ON p.id = s.product_id`

func scanSaleWithProduct(rows pgx.Rows) (repository.SaleWithProduct, error) {
	var s repository.SaleWithProduct
	err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice,
		&s.Subtotal, &s.TaxAmount, &s.Total, &s.CreatedAt,
		&s.ProductBarcode, &s.ProductTitle, &s.ProductName)
	return s, err
}

// ListSince devuelve las ventas con created_at >= from (todas si from es nil),
// más recientes primero, con los rótulos del producto.
func (r *SaleRepo) ListSince(ctx context.Context, from *time.Time) ([]repository.SaleWithProduct, error) {
	query := saleWithProductQuery
	var args []any
	if from != nil {
		query += ` WHERE s.created_at >= $1`
		args = append(args, *from)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales since: %w", err)
	}
	defer rows.Close()

	var list []repository.SaleWithProduct
	for rows.Next() {
		s, err := scanSaleWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// List pagina el historial de ventas dentro de un rango de fechas opcional,
// más recientes primero. Devuelve también el total sin paginar.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]repository.SaleWithProduct, int, error) {
	where := ""
	var args []any
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND s.created_at < $%d", len(args))
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(saleWithProductQuery+`%s ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []repository.SaleWithProduct
	for rows.Next() {
		s, err := scanSaleWithProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// CountByProduct cuenta las ventas del producto.
func (r *SaleRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
