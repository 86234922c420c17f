// Package reports contiene el agregador de reportes: rollups de solo lectura
// sobre ventas (con ventana temporal) e inventario (instantáneos).
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// Períodos soportados por BuildReport.
const (
	Period24h = "24h"
	Period7d  = "7d"
	Period30d = "30d"
	PeriodAll = "all"
)

const (
	topProductsLimit = 10
	lowStockLimit    = 20
	statsCacheTTL    = 30 * time.Second
)

// ReportUseCase agrega ventas e inventario para los reportes y el dashboard.
// Solo lee; la obsolescencia frente a escrituras concurrentes es aceptable.
type ReportUseCase struct {
	saleRepo   repository.SaleRepository
	reportRepo repository.ReportRepository
	cache      StatsCache
}

// NewReportUseCase construye el agregador. cache puede ser NopStatsCache.
func NewReportUseCase(saleRepo repository.SaleRepository, reportRepo repository.ReportRepository, cache StatsCache) *ReportUseCase {
	if cache == nil {
		cache = NopStatsCache{}
	}
	return &ReportUseCase{saleRepo: saleRepo, reportRepo: reportRepo, cache: cache}
}

// periodStart traduce el período a la fecha de corte. Períodos desconocidos
// caen al de 24 horas; "all" devuelve nil (sin filtro).
func periodStart(period string, now time.Time) (*time.Time, string) {
	switch period {
	case Period7d:
		t := now.AddDate(0, 0, -7)
		return &t, Period7d
	case Period30d:
		t := now.AddDate(0, 0, -30)
		return &t, Period30d
	case PeriodAll:
		return nil, PeriodAll
	default:
		t := now.Add(-24 * time.Hour)
		return &t, Period24h
	}
}

// BuildReport arma el reporte del período: métricas de ventas en la ventana,
// top de productos por cantidad vendida, lista de bajo stock y totales
// instantáneos del inventario a precio de venta. La mezcla de métricas con
// ventana y métricas puntuales es deliberada: los niveles de stock no tienen
// semántica de período.
func (uc *ReportUseCase) BuildReport(ctx context.Context, period string) (*dto.ReportResponse, error) {
	from, normalized := periodStart(period, time.Now())

	sales, err := uc.saleRepo.ListSince(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("reporte: ventas del período: %w", err)
	}

	salesTotal := decimal.Zero
	items := make([]dto.ReportSaleItem, 0, len(sales))

	// Top de productos: misma semántica que el flujo de caja original —
	// acumular sobre el stream de ventas (más recientes primero) y desempatar
	// por orden de primer encuentro. El sort estable conserva ese orden.
	byProduct := make(map[string]*dto.TopProduct)
	order := make([]string, 0)

	for i := range sales {
		s := &sales[i]
		// El total del reporte suma los totales ya almacenados de cada venta;
		// nunca se re-derivan los montos.
		salesTotal = salesTotal.Add(s.Total)
		items = append(items, dto.ReportSaleItem{
			ID:           s.ID,
			ProductTitle: s.ProductTitle,
			Quantity:     s.Quantity,
			Total:        s.Total,
			CreatedAt:    s.CreatedAt,
		})

		top, ok := byProduct[s.ProductID]
		if !ok {
			top = &dto.TopProduct{
				ProductID:    s.ProductID,
				ProductTitle: s.ProductTitle,
				TotalRevenue: decimal.Zero,
			}
			byProduct[s.ProductID] = top
			order = append(order, s.ProductID)
		}
		top.TotalQuantity += s.Quantity
		top.TotalRevenue = top.TotalRevenue.Add(s.Total)
	}

	topProducts := make([]dto.TopProduct, 0, len(order))
	for _, id := range order {
		topProducts = append(topProducts, *byProduct[id])
	}
	sort.SliceStable(topProducts, func(i, j int) bool {
		return topProducts[i].TotalQuantity > topProducts[j].TotalQuantity
	})
	if len(topProducts) > topProductsLimit {
		topProducts = topProducts[:topProductsLimit]
	}

	salesCount := len(sales)
	average := decimal.Zero
	if salesCount > 0 {
		average = salesTotal.DivRound(decimal.NewFromInt(int64(salesCount)), 2)
	}

	lowStockRows, err := uc.reportRepo.ListLowStock(ctx, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("reporte: bajo stock: %w", err)
	}
	lowStock := make([]dto.LowStockItem, 0, len(lowStockRows))
	for _, row := range lowStockRows {
		lowStock = append(lowStock, dto.LowStockItem{
			ProductID:    row.ProductID,
			Title:        row.Title,
			CurrentStock: row.CurrentStock,
			MinStock:     row.MinStock,
		})
	}

	summary, err := uc.reportRepo.GetInventorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: resumen de inventario: %w", err)
	}

	return &dto.ReportResponse{
		Period: normalized,
		Sales: dto.ReportSales{
			Total:   salesTotal,
			Count:   salesCount,
			Average: average,
			Items:   items,
		},
		TopProducts: topProducts,
		LowStock:    lowStock,
		Summary: dto.ReportSummary{
			TotalProducts: summary.TotalProducts,
			TotalStock:    summary.TotalStock,
			TotalValue:    summary.TotalValue,
		},
	}, nil
}

// StatsSnapshot arma el snapshot del dashboard: ventas de hoy (medianoche a
// medianoche local), conteo global de bajo stock y valor del inventario a
// precio de costo (valor de liquidación — base distinta del reporte, que
// valora a precio de venta; responden preguntas de negocio diferentes).
func (uc *ReportUseCase) StatsSnapshot(ctx context.Context) (*dto.StatsResponse, error) {
	if cached, ok, err := uc.cache.GetStats(ctx); err == nil && ok {
		return cached, nil
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	// Tres consultas independientes en paralelo.
	type salesResult struct {
		sales repository.TodaySales
		err   error
	}
	type lowResult struct {
		count int
		err   error
	}
	type valueResult struct {
		summary repository.InventorySummary
		atCost  decimal.Decimal
		err     error
	}

	salesCh := make(chan salesResult, 1)
	lowCh := make(chan lowResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		s, err := uc.reportRepo.GetSalesBetween(ctx, todayStart, todayEnd)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowCh <- lowResult{n, err}
	}()
	go func() {
		summary, err := uc.reportRepo.GetInventorySummary(ctx)
		if err != nil {
			valueCh <- valueResult{err: err}
			return
		}
		atCost, err := uc.reportRepo.GetInventoryValueAtCost(ctx)
		valueCh <- valueResult{summary: summary, atCost: atCost, err: err}
	}()

	salesRes := <-salesCh
	lowRes := <-lowCh
	valueRes := <-valueCh

	if salesRes.err != nil {
		return nil, fmt.Errorf("stats: ventas de hoy: %w", salesRes.err)
	}
	if lowRes.err != nil {
		return nil, fmt.Errorf("stats: conteo de bajo stock: %w", lowRes.err)
	}
	if valueRes.err != nil {
		return nil, fmt.Errorf("stats: valor de inventario: %w", valueRes.err)
	}

	stats := &dto.StatsResponse{
		TotalProducts:  valueRes.summary.TotalProducts,
		LowStockCount:  lowRes.count,
		InventoryValue: valueRes.atCost,
		TodaySales: dto.TodaySalesDTO{
			Total:    salesRes.sales.Total,
			Quantity: salesRes.sales.Quantity,
			Count:    salesRes.sales.Count,
		},
	}

	// Un fallo de caché no afecta la respuesta.
	_ = uc.cache.SetStats(ctx, stats, statsCacheTTL)

	return stats, nil
}
