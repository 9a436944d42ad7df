package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// Balance saldo corrido del libro de stock para un artículo en una bodega.
type Balance struct {
	Qty           decimal.Decimal
	ValuationRate decimal.Decimal
}

// StockValue valor del saldo.
func (b Balance) StockValue() decimal.Decimal {
	return b.Qty.Mul(b.ValuationRate)
}

// OpeningBalance saldo tomado del asiento anterior; cero si prev es nil.
func OpeningBalance(prev *entity.StockLedgerEntry) Balance {
	if prev == nil {
		return Balance{Qty: decimal.Zero, ValuationRate: decimal.Zero}
	}
	return Balance{Qty: prev.QtyAfterTransaction, ValuationRate: prev.ValuationRate}
}

// Repost recalcula en orden cronológico qty_after_transaction, valuation_rate y stock_value
// de entries partiendo de opening. Modifica los asientos en sitio y devuelve el saldo final.
//
// Una conciliación fija la cantidad absoluta (y la tasa si trae una); su actual_qty se
// recalcula como la diferencia contra el saldo previo. Las entradas con tasa
// actualizan el costo promedio móvil. Si el saldo queda negativo y allowNegative es false,
// devuelve domain.ErrNegativeStock.
func Repost(opening Balance, entries []*entity.StockLedgerEntry, allowNegative bool) (Balance, error) {
	bal := opening
	for _, e := range entries {
		if e.IsReconciliation() {
			e.ActualQty = e.QtyAfterTransaction.Sub(bal.Qty)
			bal.Qty = e.QtyAfterTransaction
			if e.ValuationRate.GreaterThan(decimal.Zero) {
				bal.ValuationRate = e.ValuationRate
			}
		} else {
			if e.ActualQty.GreaterThan(decimal.Zero) && e.IncomingRate.GreaterThan(decimal.Zero) {
				bal.ValuationRate = CostCalculator(bal.Qty, bal.ValuationRate, e.ActualQty, e.IncomingRate)
			}
			bal.Qty = bal.Qty.Add(e.ActualQty)
		}
		if bal.Qty.LessThan(decimal.Zero) && !allowNegative {
			return bal, fmt.Errorf("%w: %s en %s queda en %s tras %s %s",
				domain.ErrNegativeStock, e.ItemCode, e.Warehouse, bal.Qty.String(), e.VoucherType, e.VoucherNo)
		}
		e.QtyAfterTransaction = bal.Qty
		e.ValuationRate = bal.ValuationRate
		e.StockValue = bal.StockValue()
	}
	return bal, nil
}
