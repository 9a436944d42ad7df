package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

const sleColumns = `id, item_code, warehouse, posting_at, voucher_type, voucher_no, actual_qty,
	qty_after_transaction, incoming_rate, valuation_rate, stock_value, is_cancelled, created_at`

// StockLedgerRepo implementación de StockLedgerRepository sobre PostgreSQL.
// El orden cronológico es posting_at y luego seq (orden de inserción).
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro de stock. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

func scanEntry(row pgx.Row) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	err := row.Scan(
		&e.ID, &e.ItemCode, &e.Warehouse, &e.PostingAt, &e.VoucherType, &e.VoucherNo, &e.ActualQty,
		&e.QtyAfterTransaction, &e.IncomingRate, &e.ValuationRate, &e.StockValue, &e.IsCancelled, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *StockLedgerRepo) one(ctx context.Context, op, query string, args ...any) (*entity.StockLedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (r *StockLedgerRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create inserta un asiento.
func (r *StockLedgerRepo) Create(ctx context.Context, e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger_entries (` + sleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ItemCode, e.Warehouse, e.PostingAt, e.VoucherType, e.VoucherNo, e.ActualQty,
		e.QtyAfterTransaction, e.IncomingRate, e.ValuationRate, e.StockValue, e.IsCancelled, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetFirst devuelve el asiento más antiguo del par artículo+bodega.
func (r *StockLedgerRepo) GetFirst(ctx context.Context, itemCode, warehouse string) (*entity.StockLedgerEntry, error) {
	return r.one(ctx, "get first ledger entry", `
		SELECT `+sleColumns+` FROM stock_ledger_entries
		WHERE item_code = $1 AND warehouse = $2
		ORDER BY posting_at, seq LIMIT 1`, itemCode, warehouse)
}

// LastQtyExcludingReconciliation saldo del último asiento vigente ajeno a la conciliación voucherNo.
func (r *StockLedgerRepo) LastQtyExcludingReconciliation(ctx context.Context, itemCode, warehouse, voucherNo string) (decimal.Decimal, bool, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT qty_after_transaction FROM stock_ledger_entries
		WHERE item_code = $1 AND warehouse = $2 AND NOT is_cancelled
			AND NOT (voucher_type = $3 AND voucher_no = $4)
		ORDER BY posting_at DESC, seq DESC LIMIT 1`,
		itemCode, warehouse, entity.VoucherTypeStockReconciliation, voucherNo,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("last qty excluding reconciliation: %w", err)
	}
	return qty, true, nil
}

// GetPrevious último asiento vigente con posting_at < postingAt.
func (r *StockLedgerRepo) GetPrevious(ctx context.Context, itemCode, warehouse string, postingAt time.Time) (*entity.StockLedgerEntry, error) {
	return r.one(ctx, "get previous ledger entry", `
		SELECT `+sleColumns+` FROM stock_ledger_entries
		WHERE item_code = $1 AND warehouse = $2 AND NOT is_cancelled AND posting_at < $3
		ORDER BY posting_at DESC, seq DESC LIMIT 1`, itemCode, warehouse, postingAt)
}

// ListFrom asientos vigentes con posting_at >= postingAt, en orden cronológico.
func (r *StockLedgerRepo) ListFrom(ctx context.Context, itemCode, warehouse string, postingAt time.Time) ([]*entity.StockLedgerEntry, error) {
	return r.many(ctx, "list ledger entries", `
		SELECT `+sleColumns+` FROM stock_ledger_entries
		WHERE item_code = $1 AND warehouse = $2 AND NOT is_cancelled AND posting_at >= $3
		ORDER BY posting_at, seq`, itemCode, warehouse, postingAt)
}

// UpdateBalances persiste cantidad, saldo, tasa y valor recalculados de cada asiento.
func (r *StockLedgerRepo) UpdateBalances(ctx context.Context, entries []*entity.StockLedgerEntry) error {
	query := `
		UPDATE stock_ledger_entries
		SET actual_qty = $2, qty_after_transaction = $3, valuation_rate = $4, stock_value = $5
		WHERE id = $1`
	for _, e := range entries {
		if _, err := r.q.Exec(ctx, query, e.ID, e.ActualQty, e.QtyAfterTransaction, e.ValuationRate, e.StockValue); err != nil {
			return fmt.Errorf("update ledger balance %s: %w", e.ID, err)
		}
	}
	return nil
}

// ListByVoucher asientos de un comprobante (vigentes y cancelados) en orden de inserción.
func (r *StockLedgerRepo) ListByVoucher(ctx context.Context, voucherType, voucherNo string) ([]*entity.StockLedgerEntry, error) {
	return r.many(ctx, "list voucher entries", `
		SELECT `+sleColumns+` FROM stock_ledger_entries
		WHERE voucher_type = $1 AND voucher_no = $2
		ORDER BY seq`, voucherType, voucherNo)
}

// MarkVoucherCancelled marca cancelados todos los asientos del comprobante.
func (r *StockLedgerRepo) MarkVoucherCancelled(ctx context.Context, voucherType, voucherNo string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_ledger_entries SET is_cancelled = TRUE WHERE voucher_type = $1 AND voucher_no = $2`,
		voucherType, voucherNo)
	if err != nil {
		return fmt.Errorf("cancel voucher entries: %w", err)
	}
	return nil
}
