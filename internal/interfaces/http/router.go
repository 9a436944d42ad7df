package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/application/usecase"
	"github.com/jhoicas/Inventario-bins/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	StockUC      *inventory.StockUseCase
	ProductionUC *inventory.ProductionOrderUseCase
	ReportUC     *inventory.ReportUseCase
	JWTSecret    string
	Location     *time.Location // zona de posting_date/posting_time; nil = local
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token con rol); las lecturas admiten cualquier rol
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole())
	adminOnly := RequireRole(jwt.RoleAdmin)
	stockRoles := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	productionRoles := RequireRole(jwt.RoleAdmin, jwt.RoleProduccion)

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Log)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Get("/:code", itemHandler.GetByCode)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	bins := api.Group("/bins")
	binHandler := NewBinHandler(deps.StockUC, deps.Log)
	bins.Get("/", binHandler.Get)
	bins.Get("/first-entry", binHandler.FirstEntry)
	bins.Get("/items/:item_code", binHandler.ListByItem)
	bins.Post("/qty", stockRoles, binHandler.UpdateQty)
	bins.Post("/reserved-for-production", productionRoles, binHandler.RecalculateReserved)

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.Location, deps.Log)
	stock.Post("/ledger-entries", stockRoles, stockHandler.PostLedgerEntries)
	stock.Post("/vouchers/cancel", stockRoles, stockHandler.CancelVoucher)

	orders := api.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.Log)
	orders.Post("/", productionRoles, productionHandler.Create)
	orders.Get("/:id", productionHandler.Get)
	orders.Post("/:id/submit", productionRoles, productionHandler.Submit)
	orders.Post("/:id/transfer", productionRoles, productionHandler.Transfer)
	orders.Post("/:id/stop", productionRoles, productionHandler.Stop)
	orders.Post("/:id/cancel", productionRoles, productionHandler.Cancel)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	reports.Get("/stock-balance", reportHandler.StockBalance)
}
