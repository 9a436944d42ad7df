// import-opening-stock carga saldos iniciales desde un CSV (separador ';') como una única
// conciliación de stock. Crea los artículos y bodegas que no existan.
//
// Uso: go run ./cmd/import-opening-stock -file saldos.csv [-encoding latin1] [-decimal-comma]
//
//	[-date 2026-01-01] [-voucher SR-APERTURA] [-dry-run]
//
// Columnas: item_code;item_name;stock_uom;warehouse;qty;valuation_rate
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-bins/pkg/config"
	"github.com/jhoicas/Inventario-bins/pkg/logger"
)

func main() {
	file := flag.String("file", "", "ruta del CSV")
	encoding := flag.String("encoding", "utf8", "codificación: utf8, latin1 o windows-1252")
	decimalComma := flag.Bool("decimal-comma", false, "números con coma decimal (1.234,50)")
	date := flag.String("date", "", "fecha de contabilización YYYY-MM-DD (vacío = hoy)")
	voucherNo := flag.String("voucher", "", "número de comprobante (vacío = generado)")
	dryRun := flag.Bool("dry-run", false, "valida contra un almacén en memoria sin tocar la BD")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "-file es requerido")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Zerolog()

	rows, err := readOpening(*file, *encoding, *decimalComma)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer CSV")
	}
	loc, err := cfg.Stock.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	var txRunner inventory.TxRunner
	if *dryRun {
		txRunner = memory.NewStore()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Stock.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	no, err := importOpening(ctx, txRunner, rows, *date, *voucherNo, cfg.Stock.AllowNegativeStock, loc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("importar saldos iniciales")
	}
	log.Info().Str("voucher_no", no).Int("lines", len(rows)).Bool("dry_run", *dryRun).Msg("saldos iniciales importados")
}

func readOpening(path, encoding string, decimalComma bool) ([]openingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := decodeReader(f, encoding)
	if err != nil {
		return nil, err
	}
	return parseOpening(r, decimalComma)
}
