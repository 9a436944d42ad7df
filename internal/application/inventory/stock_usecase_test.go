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

func TestStockUseCase_PostLedgerEntriesCostoPromedio(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("100")})
	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-2", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("5"), IncomingRate: dec("130")})
	post(t, uc, entity.VoucherTypeDeliveryNote, "ENT-1", t0.Add(2*time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-3")})

	bin := mustBin(t, uc, "TORN", "Principal")
	assert.True(t, dec("12").Equal(bin.ActualQty), "actual: %s", bin.ActualQty)
	assert.True(t, dec("110").Equal(bin.ValuationRate), "tasa: %s", bin.ValuationRate)
	assert.True(t, dec("1320").Equal(bin.StockValue))
	assert.True(t, dec("12").Equal(bin.ProjectedQty))
	assert.True(t, dec("12").Equal(itemTotal(t, store, "TORN")))

	entries := voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-1")
	require.Len(t, entries, 1)
	assert.True(t, dec("12").Equal(entries[0].QtyAfterTransaction))

	first, err := uc.GetFirstEntry(context.Background(), "TORN", "Principal")
	require.NoError(t, err)
	assert.Equal(t, "REC-1", first.VoucherNo)
}

func TestStockUseCase_AsientoRetroactivoRecalculaPosteriores(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("10")})
	post(t, uc, entity.VoucherTypeDeliveryNote, "ENT-1", t0.Add(2*time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-4")})
	// Entrada con fecha anterior a la salida ya registrada.
	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-2", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("20")})

	ent := voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-1")
	require.Len(t, ent, 1)
	assert.True(t, dec("16").Equal(ent[0].QtyAfterTransaction))
	assert.True(t, dec("15").Equal(ent[0].ValuationRate))
	assert.True(t, dec("16").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
}

func TestStockUseCase_ConciliacionFijaYCancelaCantidad(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "LAM", Warehouse: "Taller", ActualQty: dec("12"), IncomingRate: dec("50")})
	post(t, uc, entity.VoucherTypeStockReconciliation, "SR-1", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "LAM", Warehouse: "Taller", QtyAfterTransaction: dec("20"), ValuationRate: dec("55")})

	bin := mustBin(t, uc, "LAM", "Taller")
	assert.True(t, dec("20").Equal(bin.ActualQty))
	assert.True(t, dec("55").Equal(bin.ValuationRate))

	sr := voucherEntries(t, store, entity.VoucherTypeStockReconciliation, "SR-1")
	require.Len(t, sr, 1)
	assert.True(t, dec("8").Equal(sr[0].ActualQty), "diferencia contada: %s", sr[0].ActualQty)

	// Conteo igual a la existencia: igual se registra y recalcula.
	post(t, uc, entity.VoucherTypeStockReconciliation, "SR-2", t0.Add(2*time.Hour),
		inventory.LedgerLine{ItemCode: "LAM", Warehouse: "Taller", QtyAfterTransaction: dec("20")})
	assert.True(t, dec("20").Equal(mustBin(t, uc, "LAM", "Taller").ActualQty))

	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypeStockReconciliation, "SR-2", false))
	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypeStockReconciliation, "SR-1", false))
	bin = mustBin(t, uc, "LAM", "Taller")
	assert.True(t, dec("12").Equal(bin.ActualQty), "actual: %s", bin.ActualQty)
	assert.True(t, dec("50").Equal(bin.ValuationRate))
}

func TestStockUseCase_CancelVoucher(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("100")},
		inventory.LedgerLine{ItemCode: "LAM", Warehouse: "Principal", ActualQty: dec("3"), IncomingRate: dec("7")})
	post(t, uc, entity.VoucherTypeDeliveryNote, "ENT-1", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-4")})

	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypeDeliveryNote, "ENT-1", false))
	assert.True(t, dec("10").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))

	entries := voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-1")
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.IsCancelled)
	}
	assert.True(t, dec("4").Equal(entries[1].ActualQty))

	err := uc.CancelVoucher(ctx, entity.VoucherTypeDeliveryNote, "ENT-1", false)
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = uc.CancelVoucher(ctx, entity.VoucherTypeDeliveryNote, "NO-EXISTE", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.CancelVoucher(ctx, "", "ENT-1", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin salidas vigentes, cancelar la entrada deja ambos bins en cero.
	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypePurchaseReceipt, "REC-1", false))
	assert.True(t, mustBin(t, uc, "TORN", "Principal").ActualQty.IsZero())
	assert.True(t, mustBin(t, uc, "LAM", "Principal").ActualQty.IsZero())
}

func TestStockUseCase_CancelacionViaCostoEnDestinoNoRecalcula(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("1")})
	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-2", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("5"), IncomingRate: dec("1")})
	post(t, uc, entity.VoucherTypeDeliveryNote, "ENT-1", t0.Add(2*time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-2")})

	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypePurchaseReceipt, "REC-2", true))

	assert.True(t, dec("8").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
	// La salida posterior conserva el saldo previo a la cancelación.
	ent := voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-1")
	require.Len(t, ent, 1)
	assert.True(t, dec("13").Equal(ent[0].QtyAfterTransaction))
}

func TestStockUseCase_StockNegativoRevierteTransaccion(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("2"), IncomingRate: dec("1")})

	_, err := uc.PostLedgerEntries(context.Background(), inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypeDeliveryNote,
		VoucherNo:   "ENT-9",
		PostingAt:   t0.Add(time.Hour),
		Lines: []inventory.LedgerLine{
			{ItemCode: "LAM", Warehouse: "Principal", ActualQty: dec("-1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	// Nada de la transacción quedó: ni asiento ni bin nuevo.
	assert.Empty(t, voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-9"))
	_, err = uc.GetBin(context.Background(), "LAM", "Principal")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	permissive := inventory.NewStockUseCase(store, true, nop())
	post(t, permissive, entity.VoucherTypeDeliveryNote, "ENT-10", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-5")})
	assert.True(t, dec("-3").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
}

func TestStockUseCase_PostLedgerEntriesValidacion(t *testing.T) {
	uc := inventory.NewStockUseCase(newStore(t), false, nop())
	ctx := context.Background()

	cases := []inventory.PostEntriesInput{
		{VoucherType: entity.VoucherTypeStockEntry},
		{VoucherType: "", Lines: []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("1")}}},
		{VoucherType: entity.VoucherTypeStockEntry, Lines: []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Principal"}}},
		{VoucherType: entity.VoucherTypeStockEntry, Lines: []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("1"), IncomingRate: dec("-1")}}},
		{VoucherType: entity.VoucherTypeStockReconciliation, Lines: []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Principal", QtyAfterTransaction: dec("-1")}}},
	}
	for _, in := range cases {
		_, err := uc.PostLedgerEntries(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.PostLedgerEntries(ctx, inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypeStockEntry,
		Lines:       []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Todas", ActualQty: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrGroupWarehouse)
}

func TestStockUseCase_NumeroDeComprobanteGenerado(t *testing.T) {
	uc := inventory.NewStockUseCase(newStore(t), false, nop())
	no := post(t, uc, entity.VoucherTypeStockEntry, "", time.Time{},
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("1"), IncomingRate: dec("3")})
	assert.True(t, strings.HasPrefix(no, "SE-"), no)
	assert.Len(t, no, len("SE-")+8)
}

func TestStockUseCase_NumeroDeComprobanteRepetido(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(store, false, nop())

	in := inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypePurchaseReceipt,
		VoucherNo:   "R-1",
		PostingAt:   t0,
		Lines:       []inventory.LedgerLine{{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("5"), IncomingRate: dec("2")}},
	}
	_, err := uc.PostLedgerEntries(ctx, in)
	require.NoError(t, err)

	_, err = uc.PostLedgerEntries(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, dec("5").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
	require.Len(t, voucherEntries(t, store, entity.VoucherTypePurchaseReceipt, "R-1"), 1)

	// Mismo número con otro tipo de comprobante es otro comprobante.
	post(t, uc, entity.VoucherTypeStockEntry, "R-1", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("1"), IncomingRate: dec("2")})

	// Un número cancelado tampoco se reutiliza.
	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypePurchaseReceipt, "R-1", false))
	assert.True(t, dec("1").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
	_, err = uc.PostLedgerEntries(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, dec("1").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))
}

func TestStockUseCase_ConciliacionRetroactivaDiferenciaAFecha(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	uc := inventory.NewStockUseCase(store, false, nop())

	post(t, uc, entity.VoucherTypePurchaseReceipt, "REC-1", t0,
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("10"), IncomingRate: dec("4")})
	post(t, uc, entity.VoucherTypeDeliveryNote, "ENT-1", t0.Add(2*time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", ActualQty: dec("-2")})
	// Conteo de 5 entre la entrada y la salida: a esa fecha había 10.
	post(t, uc, entity.VoucherTypeStockReconciliation, "SR-1", t0.Add(time.Hour),
		inventory.LedgerLine{ItemCode: "TORN", Warehouse: "Principal", QtyAfterTransaction: dec("5")})

	sr := voucherEntries(t, store, entity.VoucherTypeStockReconciliation, "SR-1")
	require.Len(t, sr, 1)
	assert.True(t, dec("-5").Equal(sr[0].ActualQty), "diferencia: %s", sr[0].ActualQty)
	assert.True(t, dec("3").Equal(mustBin(t, uc, "TORN", "Principal").ActualQty))

	ent := voucherEntries(t, store, entity.VoucherTypeDeliveryNote, "ENT-1")
	require.Len(t, ent, 1)
	assert.True(t, dec("3").Equal(ent[0].QtyAfterTransaction))

	require.NoError(t, uc.CancelVoucher(ctx, entity.VoucherTypeStockReconciliation, "SR-1", false))
	bin := mustBin(t, uc, "TORN", "Principal")
	assert.True(t, dec("8").Equal(bin.ActualQty), "actual: %s", bin.ActualQty)
}
