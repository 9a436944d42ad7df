package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/inventory"
)

// RepostArgs punto desde el cual se recalculan los asientos del bin.
type RepostArgs struct {
	PostingAt time.Time
	VoucherNo string
}

// RepostEntriesAfter recalcula saldo y valoración de los asientos con fecha >= PostingAt y
// deja el bin con la existencia, tasa y valor resultantes.
func (s *BinService) RepostEntriesAfter(ctx context.Context, bin *entity.Bin, args RepostArgs, allowNegative, viaLandedCostVoucher bool) error {
	prev, err := s.repos.Ledger.GetPrevious(ctx, bin.ItemCode, bin.Warehouse, args.PostingAt)
	if err != nil {
		return err
	}
	entries, err := s.repos.Ledger.ListFrom(ctx, bin.ItemCode, bin.Warehouse, args.PostingAt)
	if err != nil {
		return err
	}
	bal, err := inventory.Repost(inventory.OpeningBalance(prev), entries, allowNegative)
	if err != nil {
		return err
	}
	if err := s.repos.Ledger.UpdateBalances(ctx, entries); err != nil {
		return err
	}
	s.log.Debug().
		Str("item_code", bin.ItemCode).
		Str("warehouse", bin.Warehouse).
		Str("voucher_no", args.VoucherNo).
		Time("posting_at", args.PostingAt).
		Int("entries", len(entries)).
		Bool("via_landed_cost_voucher", viaLandedCostVoucher).
		Msg("asientos posteriores recalculados")

	bin.ActualQty = bal.Qty
	bin.ValuationRate = bal.ValuationRate
	bin.StockValue = bal.StockValue()
	return s.Save(ctx, bin, false)
}
