package usecase

import (
	"context"
	"math"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// SaleUseCase historial de ventas (solo lectura; las ventas se registran por
// el motor de transacciones).
type SaleUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo}
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD en hora local.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// List pagina el historial de ventas dentro de un rango de fechas opcional.
func (uc *SaleUseCase) List(ctx context.Context, in dto.ListSalesRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	from, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}

	sales, total, err := uc.saleRepo.List(ctx, from, to, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleHistoryItem, 0, len(sales))
	for _, s := range sales {
		items = append(items, dto.NewSaleHistoryItem(s))
	}
	return &dto.SaleListResponse{
		Sales:      items,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}, nil
}
