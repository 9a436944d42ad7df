package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0,00", formatQty(decimal.Zero))
	assert.Equal(t, "25,00", formatQty(decimal.NewFromInt(25)))
	assert.Equal(t, "1.234.567,50", formatQty(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1.000,25", formatQty(decimal.RequireFromString("-1000.254")))
	assert.Equal(t, "0,00", formatQty(decimal.RequireFromString("-0.001")))
}

func TestGenerateStockBalancePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Comercial Andina")
	rows := []inventory.StockBalanceRow{
		{ItemName: "Tornillo", Bin: &entity.Bin{
			ItemCode: "TORN-01", Warehouse: "Principal", StockUOM: "Nos",
			ActualQty: decimal.NewFromInt(10), ProjectedQty: decimal.NewFromInt(-2),
			StockValue: decimal.NewFromInt(1000),
		}},
	}
	out, err := g.GenerateStockBalancePDF(context.Background(), "Principal", rows, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := g.GenerateStockBalancePDF(context.Background(), "", nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}
