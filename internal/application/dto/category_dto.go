package dto

import (
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryResponse convierte la entidad al DTO de salida.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSupplierResponse convierte la entidad al DTO de salida.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
