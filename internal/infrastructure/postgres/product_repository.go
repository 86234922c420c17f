package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, title, name, description, cost_price, sale_price, tax_rate, current_stock, min_stock, category_id, supplier_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, supplierID *string
	err := row.Scan(
		&p.ID, &p.Barcode, &p.Title, &p.Name, &p.Description,
		&p.CostPrice, &p.SalePrice, &p.TaxRate, &p.CurrentStock, &p.MinStock,
		&categoryID, &supplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.SupplierID = deref(supplierID)
	return &p, nil
}

// Create persiste un nuevo producto. Código de barras duplicado → ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Barcode, product.Title, product.Name, product.Description,
		product.CostPrice, product.SalePrice, product.TaxRate, product.CurrentStock, product.MinStock,
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getBy(ctx context.Context, column, value, suffix string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + column + ` = $1` + suffix
	p, err := scanProduct(r.q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, "id", id, "")
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getBy(ctx, "barcode", barcode, "")
}

// GetByIDForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, "id", id, " FOR UPDATE")
}

// GetByBarcodeForUpdate obtiene el producto por código de barras bloqueando su fila.
func (r *ProductRepo) GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getBy(ctx, "barcode", barcode, " FOR UPDATE")
}

// UpdateStock fija el stock materializado del producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, newStock int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		id, newStock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza atributos del producto. No toca barcode ni current_stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET title = $2, name = $3, description = $4, cost_price = $5, sale_price = $6,
			tax_rate = $7, min_stock = $8, category_id = $9, supplier_id = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Title, product.Name, product.Description, product.CostPrice, product.SalePrice,
		product.TaxRate, product.MinStock, nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var productSortColumns = map[string]string{
	"created_at":    "created_at",
	"title":         "title",
	"name":          "name",
	"current_stock": "current_stock",
	"sale_price":    "sale_price",
}

// List lista productos con búsqueda, filtros y paginación. Devuelve también el
// total sin paginar.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := fmt.Sprintf("$%d", len(args))
		conds = append(conds, "(barcode ILIKE "+n+" OR title ILIKE "+n+" OR name ILIKE "+n+")")
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		conds = append(conds, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy, ok := productSortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, orderBy, dir, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta los productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// CountBySupplier cuenta los productos que referencian al proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return n, nil
}
