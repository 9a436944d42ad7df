package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// StockLedgerRepository define el puerto de persistencia para el libro de stock.
type StockLedgerRepository interface {
	Create(ctx context.Context, entry *entity.StockLedgerEntry) error
	// GetFirst devuelve el asiento más antiguo por fecha de contabilización y luego por orden de inserción; nil si no hay.
	GetFirst(ctx context.Context, itemCode, warehouse string) (*entity.StockLedgerEntry, error)
	// LastQtyExcludingReconciliation devuelve qty_after_transaction del asiento más reciente
	// que no pertenece a la conciliación voucherNo. found=false si no hay asientos.
	LastQtyExcludingReconciliation(ctx context.Context, itemCode, warehouse, voucherNo string) (qty decimal.Decimal, found bool, err error)
	// GetPrevious devuelve el último asiento vigente anterior a postingAt; nil si no hay.
	GetPrevious(ctx context.Context, itemCode, warehouse string, postingAt time.Time) (*entity.StockLedgerEntry, error)
	// ListFrom lista asientos vigentes con fecha >= postingAt en orden cronológico.
	ListFrom(ctx context.Context, itemCode, warehouse string, postingAt time.Time) ([]*entity.StockLedgerEntry, error)
	// UpdateBalances persiste actual_qty, qty_after_transaction, valuation_rate y stock_value.
	UpdateBalances(ctx context.Context, entries []*entity.StockLedgerEntry) error
	ListByVoucher(ctx context.Context, voucherType, voucherNo string) ([]*entity.StockLedgerEntry, error)
	MarkVoucherCancelled(ctx context.Context, voucherType, voucherNo string) error
}
