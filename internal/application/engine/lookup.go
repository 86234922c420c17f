package engine

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// LookupResult resultado de la consulta por código de barras. Found=false
// indica al flujo de escaneo que debe abrir el alta de producto nuevo.
type LookupResult struct {
	Found           bool
	Product         *entity.Product
	RecentMovements []*entity.StockMovement
	RecentSales     []*entity.Sale
}

// LookupByBarcode busca el producto por código de barras y devuelve la
// ventana acotada de movimientos y ventas recientes (más recientes primero).
// Lectura pura: no abre transacción.
func (e *Engine) LookupByBarcode(ctx context.Context, barcode string) (result *LookupResult, err error) {
	start := time.Now()
	defer func() { e.observe("lookup_by_barcode", start, err) }()

	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := e.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &LookupResult{Found: false}, nil
	}

	movements, err := e.movementRepo.ListRecentByProduct(ctx, product.ID, e.recentWindow)
	if err != nil {
		return nil, err
	}
	sales, err := e.saleRepo.ListRecentByProduct(ctx, product.ID, e.recentWindow)
	if err != nil {
		return nil, err
	}

	return &LookupResult{
		Found:           true,
		Product:         product,
		RecentMovements: movements,
		RecentSales:     sales,
	}, nil
}
