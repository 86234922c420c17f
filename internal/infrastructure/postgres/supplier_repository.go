package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. Nombre duplicado → ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (id, name, contact, phone, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Phone, supplier.Email, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) getBy(ctx context.Context, column, value string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, contact, phone, email, created_at, updated_at FROM suppliers WHERE `+column+` = $1`,
		value,
	).Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.getBy(ctx, "id", id)
}

// GetByName obtiene un proveedor por nombre.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.getBy(ctx, "name", name)
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET name = $2, contact = $3, phone = $4, email = $5, updated_at = $6 WHERE id = $1`,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Phone, supplier.Email, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los proveedores por nombre.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, contact, phone, email, created_at, updated_at FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
