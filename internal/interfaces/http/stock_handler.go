package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
)

// StockHandler contabiliza y cancela comprobantes en el libro de stock.
type StockHandler struct {
	uc  *inventory.StockUseCase
	loc *time.Location
	log zerolog.Logger
}

// NewStockHandler construye el handler. loc es la zona de las fechas de contabilización.
func NewStockHandler(uc *inventory.StockUseCase, loc *time.Location, log zerolog.Logger) *StockHandler {
	if loc == nil {
		loc = time.Local
	}
	return &StockHandler{uc: uc, loc: loc, log: log}
}

// PostLedgerEntries godoc
// @Summary      Contabilizar comprobante de stock
// @Description  Un asiento por línea. En conciliaciones qty_after_transaction es la cantidad contada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostLedgerEntriesRequest  true  "Comprobante"
// @Success      201   {object}  dto.PostLedgerEntriesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/ledger-entries [post]
func (h *StockHandler) PostLedgerEntries(c *fiber.Ctx) error {
	var req dto.PostLedgerEntriesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := inventory.PostEntriesInputFromRequest(req, h.loc)
	if err != nil {
		return writeError(c, h.log, err)
	}
	voucherNo, err := h.uc.PostLedgerEntries(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostLedgerEntriesResponse{
		VoucherType: req.VoucherType,
		VoucherNo:   voucherNo,
	})
}

// CancelVoucher godoc
// @Summary      Cancelar comprobante de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CancelVoucherRequest  true  "Comprobante"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/vouchers/cancel [post]
func (h *StockHandler) CancelVoucher(c *fiber.Ctx) error {
	var req dto.CancelVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.uc.CancelVoucher(c.Context(), req.VoucherType, req.VoucherNo, req.ViaLandedCostVoucher); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "comprobante cancelado"})
}
