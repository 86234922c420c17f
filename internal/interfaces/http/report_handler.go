package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/reports"
)

// ReportHandler expone los reportes y el snapshot del dashboard.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Report godoc
// @Summary      Reporte del período (ventas, top de productos, bajo stock, inventario)
// @Tags         reports
// @Produce      json
// @Param        period  query  string  false  "24h, 7d, 30d o all"  default(24h)
// @Success      200  {object}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.BuildReport(c.Context(), c.Query("period"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Snapshot del dashboard (ventas de hoy, bajo stock, valor a costo)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.StatsSnapshot(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
