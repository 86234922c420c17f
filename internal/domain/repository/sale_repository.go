package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SaleWithProduct venta enriquecida con los rótulos del producto (para
// historial y reportes; evita un segundo viaje por producto).
type SaleWithProduct struct {
	entity.Sale
	ProductBarcode string
	ProductTitle   string
	ProductName    string
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Las ventas son inmutables: solo Create y lecturas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListRecentByProduct(ctx context.Context, productID string, limit int) ([]*entity.Sale, error)
	// ListSince devuelve las ventas con createdAt >= from (todas si from es nil),
	// más recientes primero, con los rótulos del producto.
	ListSince(ctx context.Context, from *time.Time) ([]SaleWithProduct, error)
	// List pagina el historial de ventas dentro de un rango de fechas opcional.
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]SaleWithProduct, int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
