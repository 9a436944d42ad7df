package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
)

// BinHandler consulta y ajusta bins (artículo+bodega).
type BinHandler struct {
	uc  *inventory.StockUseCase
	log zerolog.Logger
}

// NewBinHandler construye el handler.
func NewBinHandler(uc *inventory.StockUseCase, log zerolog.Logger) *BinHandler {
	return &BinHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener bin
// @Tags         bins
// @Security     Bearer
// @Produce      json
// @Param        item_code  query  string  true  "Código del artículo"
// @Param        warehouse  query  string  true  "Bodega"
// @Success      200  {object}  dto.BinResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bins [get]
func (h *BinHandler) Get(c *fiber.Ctx) error {
	bin, err := h.uc.GetBin(c.Context(), c.Query("item_code"), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToBinResponse(bin))
}

// ListByItem godoc
// @Summary      Bins de un artículo en todas las bodegas
// @Tags         bins
// @Security     Bearer
// @Produce      json
// @Param        item_code  path  string  true  "Código del artículo"
// @Success      200  {object}  dto.BinListResponse
// @Router       /api/bins/items/{item_code} [get]
func (h *BinHandler) ListByItem(c *fiber.Ctx) error {
	itemCode := c.Params("item_code")
	bins, err := h.uc.ListBinsByItem(c.Context(), itemCode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.BinListResponse{ItemCode: itemCode, Items: make([]dto.BinResponse, 0, len(bins))}
	for _, b := range bins {
		out.Items = append(out.Items, inventory.ToBinResponse(b))
	}
	return c.JSON(out)
}

// FirstEntry godoc
// @Summary      Primer asiento del libro de stock del bin
// @Tags         bins
// @Security     Bearer
// @Produce      json
// @Param        item_code  query  string  true  "Código del artículo"
// @Param        warehouse  query  string  true  "Bodega"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bins/first-entry [get]
func (h *BinHandler) FirstEntry(c *fiber.Ctx) error {
	e, err := h.uc.GetFirstEntry(c.Context(), c.Query("item_code"), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToLedgerEntryResponse(e))
}

// UpdateQty godoc
// @Summary      Aplicar deltas de cantidades comprometidas
// @Description  Pedidos, reservas, requisiciones y planeación; no mueve existencia física.
// @Tags         bins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateBinQtyRequest  true  "Deltas"
// @Success      200   {object}  dto.BinResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bins/qty [post]
func (h *BinHandler) UpdateQty(c *fiber.Ctx) error {
	var in dto.UpdateBinQtyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bin, err := h.uc.UpdateBinQty(c.Context(), inventory.BinQtyInput{
		ItemCode:    in.ItemCode,
		Warehouse:   in.Warehouse,
		VoucherType: in.VoucherType,
		VoucherNo:   in.VoucherNo,
		OrderedQty:  in.OrderedQty,
		ReservedQty: in.ReservedQty,
		IndentedQty: in.IndentedQty,
		PlannedQty:  in.PlannedQty,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToBinResponse(bin))
}

// RecalculateReserved godoc
// @Summary      Recalcular reserva para producción
// @Tags         bins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BinRefRequest  true  "Bin"
// @Success      200   {object}  dto.BinResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bins/reserved-for-production [post]
func (h *BinHandler) RecalculateReserved(c *fiber.Ctx) error {
	var in dto.BinRefRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bin, err := h.uc.RecalculateReservedForProduction(c.Context(), in.ItemCode, in.Warehouse)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToBinResponse(bin))
}
