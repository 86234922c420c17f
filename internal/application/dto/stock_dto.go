package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// AddStockRequest body para POST /api/stock/add (flujo de escaneo: la entrada
// llega por código de barras). UnitPrice es opcional; por defecto se usa el
// costo actual del producto.
type AddStockRequest struct {
	Barcode   string           `json:"barcode" validate:"required,min=1"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes"`
}

// AddStockByIDRequest body para POST /api/products/:id/stock.
type AddStockByIDRequest struct {
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewMovementResponse convierte la entidad al DTO de salida.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TotalValue: m.TotalValue,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

// AddStockResponse salida de una entrada de stock.
type AddStockResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	NewStock int              `json:"new_stock"`
}

// CheckProductResponse salida de GET /api/products/check?barcode=...
// Exists=false con Product nil indica "producto nuevo" al flujo de escaneo.
type CheckProductResponse struct {
	Exists          bool               `json:"exists"`
	Product         *ProductResponse   `json:"product"`
	RecentMovements []MovementResponse `json:"recent_movements,omitempty"`
	RecentSales     []SaleResponse     `json:"recent_sales,omitempty"`
}
