package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 4, 6, 8, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newStore crea el almacén con TORN (Nos), LAM (Kg), FG; la bodega grupo Todas y sus hijas Principal y Taller.
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	err := store.Run(ctx, func(repos inventory.Repositories) error {
		for _, it := range []*entity.Item{
			{Code: "TORN", Name: "Tornillo", StockUOM: "Nos", IsStockItem: true},
			{Code: "LAM", Name: "Lámina", StockUOM: "Kg", IsStockItem: true},
			{Code: "FG", Name: "Producto terminado", StockUOM: "Nos", IsStockItem: true},
		} {
			if err := repos.Items.Create(ctx, it); err != nil {
				return err
			}
		}
		for _, w := range []*entity.Warehouse{
			{ID: "Todas", Name: "Todas", IsGroup: true},
			{ID: "Principal", Name: "Principal", ParentWarehouse: "Todas"},
			{ID: "Taller", Name: "Taller", ParentWarehouse: "Todas"},
		} {
			if err := repos.Warehouses.Create(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return store
}

func post(t *testing.T, uc *inventory.StockUseCase, vtype, vno string, at time.Time, lines ...inventory.LedgerLine) string {
	t.Helper()
	no, err := uc.PostLedgerEntries(context.Background(), inventory.PostEntriesInput{
		VoucherType: vtype, VoucherNo: vno, PostingAt: at, Lines: lines,
	})
	require.NoError(t, err)
	return no
}

func mustBin(t *testing.T, uc *inventory.StockUseCase, item, wh string) *entity.Bin {
	t.Helper()
	b, err := uc.GetBin(context.Background(), item, wh)
	require.NoError(t, err)
	return b
}

func voucherEntries(t *testing.T, store *memory.Store, vtype, vno string) []*entity.StockLedgerEntry {
	t.Helper()
	var list []*entity.StockLedgerEntry
	require.NoError(t, store.Run(context.Background(), func(repos inventory.Repositories) error {
		var err error
		list, err = repos.Ledger.ListByVoucher(context.Background(), vtype, vno)
		return err
	}))
	return list
}

func itemTotal(t *testing.T, store *memory.Store, code string) decimal.Decimal {
	t.Helper()
	var total decimal.Decimal
	require.NoError(t, store.Run(context.Background(), func(repos inventory.Repositories) error {
		it, err := repos.Items.GetByCode(context.Background(), code)
		if err != nil {
			return err
		}
		total = it.TotalProjectedQty
		return nil
	}))
	return total
}

func nop() zerolog.Logger { return zerolog.Nop() }
