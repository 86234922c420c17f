package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// CreateSaleRequest body para POST /api/sales (flujo de escaneo). La venta se
// hace siempre al precio de venta vigente del producto.
type CreateSaleRequest struct {
	Barcode  string `json:"barcode" validate:"required,min=1"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// SellByIDRequest body para POST /api/products/:id/sell. Permite fijar el
// precio unitario de forma explícita (caja manual).
type SellByIDRequest struct {
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewSaleResponse convierte la entidad al DTO de salida.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Subtotal:  s.Subtotal,
		TaxAmount: s.TaxAmount,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
	}
}

// CreateSaleResponse salida de una venta registrada.
type CreateSaleResponse struct {
	Sale     SaleResponse    `json:"sale"`
	Product  ProductResponse `json:"product"`
	NewStock int             `json:"new_stock"`
}

// ListSalesRequest filtros del historial de ventas.
type ListSalesRequest struct {
	PageRequest
	StartDate string `query:"start_date"` // RFC 3339 o fecha YYYY-MM-DD
	EndDate   string `query:"end_date"`
}

// SaleHistoryItem venta con rótulos del producto para el historial.
type SaleHistoryItem struct {
	SaleResponse
	ProductBarcode string `json:"product_barcode"`
	ProductTitle   string `json:"product_title"`
	ProductName    string `json:"product_name"`
}

// NewSaleHistoryItem convierte la fila del repositorio al DTO.
func NewSaleHistoryItem(s repository.SaleWithProduct) SaleHistoryItem {
	return SaleHistoryItem{
		SaleResponse:   NewSaleResponse(&s.Sale),
		ProductBarcode: s.ProductBarcode,
		ProductTitle:   s.ProductTitle,
		ProductName:    s.ProductName,
	}
}

// SaleListResponse historial paginado de ventas.
type SaleListResponse struct {
	Sales      []SaleHistoryItem `json:"sales"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
