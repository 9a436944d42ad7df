package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// ProductionHandler maneja el ciclo de vida de órdenes de producción.
type ProductionHandler struct {
	uc  *inventory.ProductionOrderUseCase
	log zerolog.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *inventory.ProductionOrderUseCase, log zerolog.Logger) *ProductionHandler {
	return &ProductionHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden de producción (borrador)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Orden"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-orders [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductionOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	o, err := h.uc.Create(c.Context(), inventory.ProductionOrderInputFromRequest(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToProductionOrderResponse(o))
}

// Get godoc
// @Summary      Obtener orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	o, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToProductionOrderResponse(o))
}

// Submit godoc
// @Summary      Someter orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/submit [post]
func (h *ProductionHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Submit)
}

// Transfer godoc
// @Summary      Transferir material a producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden"
// @Param        body  body  dto.TransferMaterialRequest  true  "Cantidades transferidas"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/transfer [post]
func (h *ProductionHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	lines := inventory.TransferLinesFromRequest(req)
	return h.transition(c, func(ctx context.Context, id string) (*entity.ProductionOrder, error) {
		return h.uc.TransferMaterial(ctx, id, lines)
	})
}

// Stop godoc
// @Summary      Detener orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/stop [post]
func (h *ProductionHandler) Stop(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Stop)
}

// Cancel godoc
// @Summary      Cancelar orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *ProductionHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*entity.ProductionOrder, error)) error {
	o, err := fn(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToProductionOrderResponse(o))
}
