package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
}

// Offset calcula el desplazamiento a partir de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse cuerpo de error HTTP. Available/Requested solo se llenan en
// errores de stock insuficiente para que la UI muestre lo disponible sin un
// segundo viaje.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}
