package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-bins/pkg/config"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	// Base dedicada: las pruebas truncan las tablas.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omite la prueba de integración")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	_, err = pool.Exec(ctx, `TRUNCATE TABLE production_order_items, production_orders, stock_ledger_entries, bins, items, warehouses CASCADE`)
	require.NoError(t, err)

	repos := postgres.NewRepositories(pool)
	now := time.Now()
	require.NoError(t, repos.Items.Create(ctx, &entity.Item{Code: "TORNILLO", Name: "Tornillo", StockUOM: "Nos", IsStockItem: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "Todas", Name: "Todas", IsGroup: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "Principal", Name: "Principal", ParentWarehouse: "Todas", CreatedAt: now, UpdatedAt: now}))
	return pool
}

func TestPostgres_LedgerYBin(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), false, zerolog.Nop())
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	_, err := uc.PostLedgerEntries(ctx, inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypePurchaseReceipt,
		VoucherNo:   "REC-1",
		PostingAt:   t0,
		Lines: []inventory.LedgerLine{
			{ItemCode: "TORNILLO", Warehouse: "Principal", ActualQty: decimal.NewFromInt(10), IncomingRate: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	_, err = uc.PostLedgerEntries(ctx, inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypeDeliveryNote,
		VoucherNo:   "ENT-1",
		PostingAt:   t0.Add(time.Hour),
		Lines: []inventory.LedgerLine{
			{ItemCode: "TORNILLO", Warehouse: "Principal", ActualQty: decimal.NewFromInt(-4)},
		},
	})
	require.NoError(t, err)

	bin, err := uc.GetBin(ctx, "TORNILLO", "Principal")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(bin.ActualQty), "actual: %s", bin.ActualQty)
	assert.True(t, decimal.NewFromInt(6).Equal(bin.ProjectedQty))
	assert.True(t, decimal.NewFromInt(100).Equal(bin.ValuationRate))
	assert.Equal(t, "Nos", bin.StockUOM)

	item, err := postgres.NewItemRepository(pool).GetByCode(ctx, "TORNILLO")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(item.TotalProjectedQty))

	first, err := uc.GetFirstEntry(ctx, "TORNILLO", "Principal")
	require.NoError(t, err)
	assert.Equal(t, "REC-1", first.VoucherNo)

	// La salida excede la existencia: se revierte toda la transacción.
	_, err = uc.PostLedgerEntries(ctx, inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypeDeliveryNote,
		PostingAt:   t0.Add(2 * time.Hour),
		Lines: []inventory.LedgerLine{
			{ItemCode: "TORNILLO", Warehouse: "Principal", ActualQty: decimal.NewFromInt(-50)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	bin, err = uc.GetBin(ctx, "TORNILLO", "Principal")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(bin.ActualQty))

	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypeDeliveryNote, "ENT-1", false))
	bin, err = uc.GetBin(ctx, "TORNILLO", "Principal")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(bin.ActualQty))
}

func TestPostgres_BodegaGrupoRechazada(t *testing.T) {
	pool := setupTestDB(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), false, zerolog.Nop())

	_, err := uc.UpdateBinQty(context.Background(), inventory.BinQtyInput{
		ItemCode:    "TORNILLO",
		Warehouse:   "Todas",
		VoucherType: entity.VoucherTypePurchaseOrder,
		OrderedQty:  decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrGroupWarehouse)
}
