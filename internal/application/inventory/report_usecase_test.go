package inventory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

type fakeReport struct {
	warehouse string
	rows      []inventory.StockBalanceRow
}

func (f *fakeReport) GenerateStockBalancePDF(_ context.Context, warehouse string, rows []inventory.StockBalanceRow, _ time.Time) ([]byte, error) {
	f.warehouse = warehouse
	f.rows = rows
	return []byte("%PDF-fake"), nil
}

func TestReportUseCase_StockBalancePDF(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	stock := inventory.NewStockUseCase(store, false, nop())
	post(t, stock, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Taller", ActualQty: dec("1"), IncomingRate: dec("1")},
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("2"), IncomingRate: dec("1")},
		inventory.LedgerLine{ItemCode: "LAM", Warehouse: "Principal", ActualQty: dec("3"), IncomingRate: dec("1")})

	gen := &fakeReport{}
	uc := inventory.NewReportUseCase(store, gen)

	out, name, err := uc.StockBalancePDF(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.True(t, strings.HasPrefix(name, "saldos_todas_"), name)
	require.Len(t, gen.rows, 3)
	assert.Equal(t, "LAM", gen.rows[0].Bin.ItemCode)
	assert.Equal(t, "Lámina", gen.rows[0].ItemName)
	assert.Equal(t, "Taller", gen.rows[2].Bin.Warehouse)

	_, name, err = uc.StockBalancePDF(ctx, "Principal")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "saldos_Principal_"), name)
	assert.Len(t, gen.rows, 2)

	_, _, err = uc.StockBalancePDF(ctx, "No existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
