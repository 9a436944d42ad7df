package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Inventario-bins/docs"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/application/usecase"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-bins/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-bins/internal/interfaces/http"
	"github.com/jhoicas/Inventario-bins/pkg/config"
	"github.com/jhoicas/Inventario-bins/pkg/logger"
)

// @title        Inventario Bins API
// @version      1.0
// @description  Saldos por artículo y bodega, libro de stock y reservas de producción.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Stock.StorageDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	loc, err := cfg.Stock.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	var txRunner inventory.TxRunner
	switch cfg.Stock.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Stock.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	itemUC := usecase.NewItemUseCase(txRunner)
	warehouseUC := usecase.NewWarehouseUseCase(txRunner)
	stockUC := inventory.NewStockUseCase(txRunner, cfg.Stock.AllowNegativeStock, log.Zerolog())
	productionUC := inventory.NewProductionOrderUseCase(txRunner, log.Zerolog())

	// PDF: reporte de saldos por bodega
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Stock.Company)
	reportUC := inventory.NewReportUseCase(txRunner, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Bins API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		WarehouseUC:  warehouseUC,
		StockUC:      stockUC,
		ProductionUC: productionUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
		Location:     loc,
		Log:          log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
