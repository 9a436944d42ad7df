package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

func newOrder(t *testing.T, uc *inventory.ProductionOrderUseCase) *entity.ProductionOrder {
	t.Helper()
	o, err := uc.Create(context.Background(), inventory.ProductionOrderInput{
		ProductionItem:  "FG",
		Qty:             dec("5"),
		SourceWarehouse: "Principal",
		Items: []inventory.ProductionItemInput{
			{ItemCode: "TORN", RequiredQty: dec("10")},
			{ItemCode: "LAM", RequiredQty: dec("2.5")},
		},
	})
	require.NoError(t, err)
	return o
}

func TestProductionOrder_CicloDeReserva(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	stock := inventory.NewStockUseCase(store, false, nop())
	uc := inventory.NewProductionOrderUseCase(store, nop())

	post(t, stock, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("30"), IncomingRate: dec("2")})

	o := newOrder(t, uc)
	assert.Equal(t, entity.ProductionStatusDraft, o.Status)
	assert.True(t, mustBin(t, stock, "TORN", "Principal").ReservedQtyForProduction.IsZero())

	o, err := uc.Submit(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusSubmitted, o.DocStatus)
	assert.Equal(t, entity.ProductionStatusNotStarted, o.Status)

	torn := mustBin(t, stock, "TORN", "Principal")
	assert.True(t, dec("10").Equal(torn.ReservedQtyForProduction))
	assert.True(t, dec("20").Equal(torn.ProjectedQty))
	// La reserva de producción no refresca el total del artículo.
	assert.True(t, dec("30").Equal(itemTotal(t, store, "TORN")))

	lam := mustBin(t, stock, "LAM", "Principal")
	assert.True(t, dec("2.5").Equal(lam.ReservedQtyForProduction))
	assert.True(t, dec("-2.5").Equal(lam.ProjectedQty))

	o, err = uc.TransferMaterial(ctx, o.ID, []inventory.TransferLine{{ItemCode: "TORN", Qty: dec("4")}})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusInProcess, o.Status)
	assert.True(t, dec("6").Equal(mustBin(t, stock, "TORN", "Principal").ReservedQtyForProduction))

	_, err = uc.Stop(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, mustBin(t, stock, "TORN", "Principal").ReservedQtyForProduction.IsZero())
	assert.True(t, mustBin(t, stock, "LAM", "Principal").ReservedQtyForProduction.IsZero())

	_, err = uc.TransferMaterial(ctx, o.ID, []inventory.TransferLine{{ItemCode: "TORN", Qty: dec("1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidDocStatus)

	o, err = uc.Cancel(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusCancelled, o.DocStatus)
	_, err = uc.Submit(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidDocStatus)
}

func TestProductionOrder_TransferenciaCompleta(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewProductionOrderUseCase(store, nop())

	o := newOrder(t, uc)
	_, err := uc.Submit(ctx, o.ID)
	require.NoError(t, err)

	o, err = uc.TransferMaterial(ctx, o.ID, []inventory.TransferLine{
		{ItemCode: "TORN", Qty: dec("10")},
		{ItemCode: "LAM", Qty: dec("2.5")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCompleted, o.Status)

	_, err = uc.TransferMaterial(ctx, o.ID, []inventory.TransferLine{{ItemCode: "FG", Qty: dec("1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(got.Items[0].TransferredQty))
}

func TestProductionOrder_Validaciones(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewProductionOrderUseCase(store, nop())

	_, err := uc.Create(ctx, inventory.ProductionOrderInput{ProductionItem: "FG", Qty: dec("1"), SourceWarehouse: "Principal"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, inventory.ProductionOrderInput{
		ProductionItem: "FG", Qty: dec("1"), SourceWarehouse: "Todas",
		Items: []inventory.ProductionItemInput{{ItemCode: "TORN", RequiredQty: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrGroupWarehouse)

	_, err = uc.Create(ctx, inventory.ProductionOrderInput{
		ProductionItem: "FG", Qty: dec("1"), SourceWarehouse: "Principal",
		Items: []inventory.ProductionItemInput{{ItemCode: "NOPE", RequiredQty: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	o := newOrder(t, uc)
	_, err = uc.Stop(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidDocStatus)
	_, err = uc.Cancel(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidDocStatus)
}
