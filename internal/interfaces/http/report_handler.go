package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
)

// ReportHandler sirve reportes en PDF.
type ReportHandler struct {
	uc  *inventory.ReportUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// StockBalance godoc
// @Summary      Reporte PDF de saldos por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse  query  string  false  "Bodega (vacío = todas)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-balance [get]
func (h *ReportHandler) StockBalance(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockBalancePDF(c.Context(), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
