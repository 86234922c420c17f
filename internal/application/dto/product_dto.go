package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto (con stock de apertura
// opcional; si CurrentStock > 0 el motor registra el movimiento ENTRY inicial).
type CreateProductRequest struct {
	Barcode      string          `json:"barcode" validate:"required,min=1,max=64"`
	Title        string          `json:"title" validate:"required,min=1,max=120"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	CurrentStock int             `json:"current_stock" validate:"min=0"`
	MinStock     int             `json:"min_stock" validate:"min=0"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
}

// UpdateProductRequest entrada para editar atributos de un producto.
// No toca Barcode (inmutable) ni CurrentStock (solo vía movimientos).
type UpdateProductRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=120"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
	CategoryID  string          `json:"category_id"`
	SupplierID  string          `json:"supplier_id"`
}

// ListProductsRequest filtros del listado.
type ListProductsRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	SupplierID string `query:"supplier_id"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=created_at title current_stock sale_price"`
	SortOrder  string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Title        string          `json:"title"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewProductResponse convierte la entidad al DTO de salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Title:        p.Title,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		TaxRate:      p.TaxRate,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
