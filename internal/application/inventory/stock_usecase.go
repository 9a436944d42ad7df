package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/inventory"
)

// StockUseCase expone las operaciones de bins y libro de stock; cada llamada corre en su propia
// transacción y bloquea las filas de bin que modifica (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner           TxRunner
	allowNegativeStock bool
	log                zerolog.Logger
	now                func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, allowNegativeStock bool, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{
		txRunner:           txRunner,
		allowNegativeStock: allowNegativeStock,
		log:                log,
		now:                time.Now,
	}
}

// GetBin obtiene el bin de un artículo en una bodega.
func (uc *StockUseCase) GetBin(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	if itemCode == "" || warehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	var bin *entity.Bin
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		bin, err = repos.Bins.Get(ctx, itemCode, warehouse)
		return err
	})
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, domain.ErrNotFound
	}
	return bin, nil
}

// ListBinsByItem lista los bins de un artículo en todas sus bodegas.
func (uc *StockUseCase) ListBinsByItem(ctx context.Context, itemCode string) ([]*entity.Bin, error) {
	var bins []*entity.Bin
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		bins, err = repos.Bins.ListByItem(ctx, itemCode)
		return err
	})
	return bins, err
}

// GetFirstEntry devuelve el primer asiento del libro para el bin; ErrNotFound si el bin
// no existe o no tiene asientos.
func (uc *StockUseCase) GetFirstEntry(ctx context.Context, itemCode, warehouse string) (*entity.StockLedgerEntry, error) {
	var first *entity.StockLedgerEntry
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		bin, err := repos.Bins.Get(ctx, itemCode, warehouse)
		if err != nil {
			return err
		}
		if bin == nil {
			return domain.ErrNotFound
		}
		first, err = NewBinService(repos, uc.log).GetFirstSLE(ctx, bin)
		return err
	})
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, domain.ErrNotFound
	}
	return first, nil
}

// BinQtyInput deltas de cantidades comprometidas que no pasan por el libro de stock
// (órdenes de compra y venta, requisiciones, planeación).
type BinQtyInput struct {
	ItemCode    string
	Warehouse   string
	VoucherType string
	VoucherNo   string
	OrderedQty  decimal.Decimal
	ReservedQty decimal.Decimal
	IndentedQty decimal.Decimal
	PlannedQty  decimal.Decimal
}

// UpdateBinQty aplica los deltas al bin (creándolo si no existe) y devuelve el bin resultante.
func (uc *StockUseCase) UpdateBinQty(ctx context.Context, in BinQtyInput) (*entity.Bin, error) {
	if in.ItemCode == "" || in.Warehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.VoucherType == entity.VoucherTypeStockReconciliation {
		return nil, fmt.Errorf("%w: las conciliaciones se registran en el libro de stock", domain.ErrInvalidInput)
	}
	var bin *entity.Bin
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		svc := NewBinService(repos, uc.log)
		var err error
		bin, err = svc.GetOrCreateBin(ctx, in.ItemCode, in.Warehouse)
		if err != nil {
			return err
		}
		return svc.UpdateStock(ctx, bin, StockArgs{
			VoucherType: in.VoucherType,
			VoucherNo:   in.VoucherNo,
			OrderedQty:  in.OrderedQty,
			ReservedQty: in.ReservedQty,
			IndentedQty: in.IndentedQty,
			PlannedQty:  in.PlannedQty,
		}, uc.options(false))
	})
	if err != nil {
		return nil, err
	}
	return bin, nil
}

// RecalculateReservedForProduction recalcula la reserva de producción de un bin existente.
func (uc *StockUseCase) RecalculateReservedForProduction(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	var bin *entity.Bin
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		bin, err = repos.Bins.GetForUpdate(ctx, itemCode, warehouse)
		if err != nil {
			return err
		}
		if bin == nil {
			return domain.ErrNotFound
		}
		return NewBinService(repos, uc.log).UpdateReservedQtyForProduction(ctx, bin)
	})
	if err != nil {
		return nil, err
	}
	return bin, nil
}

// LedgerLine línea de un comprobante que mueve stock.
type LedgerLine struct {
	ItemCode            string
	Warehouse           string
	ActualQty           decimal.Decimal
	IncomingRate        decimal.Decimal
	QtyAfterTransaction decimal.Decimal // conciliaciones: cantidad contada
	ValuationRate       decimal.Decimal // conciliaciones: tasa opcional
}

// PostEntriesInput comprobante a contabilizar en el libro de stock.
type PostEntriesInput struct {
	VoucherType          string
	VoucherNo            string // vacío = se genera
	PostingAt            time.Time
	ViaLandedCostVoucher bool
	Lines                []LedgerLine
}

// PostLedgerEntries registra un asiento por línea y actualiza el bin correspondiente.
// Devuelve el número de comprobante usado. Un número ya presente en el libro, vigente o
// cancelado, devuelve domain.ErrDuplicate.
func (uc *StockUseCase) PostLedgerEntries(ctx context.Context, in PostEntriesInput) (string, error) {
	if err := validatePostInput(in); err != nil {
		return "", err
	}
	if in.VoucherNo == "" {
		in.VoucherNo = voucherPrefix(in.VoucherType) + "-" + strings.ToUpper(uuid.New().String()[:8])
	}
	if in.PostingAt.IsZero() {
		in.PostingAt = uc.now()
	}

	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		existing, err := repos.Ledger.ListByVoucher(ctx, in.VoucherType, in.VoucherNo)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: comprobante %s %s ya contabilizado", domain.ErrDuplicate, in.VoucherType, in.VoucherNo)
		}
		svc := NewBinService(repos, uc.log)
		for _, line := range in.Lines {
			bin, err := svc.GetOrCreateBin(ctx, line.ItemCode, line.Warehouse)
			if err != nil {
				return err
			}
			entry := &entity.StockLedgerEntry{
				ID:           uuid.New().String(),
				ItemCode:     line.ItemCode,
				Warehouse:    line.Warehouse,
				PostingAt:    in.PostingAt,
				VoucherType:  in.VoucherType,
				VoucherNo:    in.VoucherNo,
				ActualQty:    line.ActualQty,
				IncomingRate: line.IncomingRate,
				CreatedAt:    uc.now(),
			}
			args := StockArgs{
				VoucherType: in.VoucherType,
				VoucherNo:   in.VoucherNo,
				PostingAt:   in.PostingAt,
				ActualQty:   line.ActualQty,
			}
			if in.VoucherType == entity.VoucherTypeStockReconciliation {
				// diferencia contra el saldo a la fecha del conteo, no contra el saldo actual
				prev, err := repos.Ledger.GetPrevious(ctx, line.ItemCode, line.Warehouse, in.PostingAt)
				if err != nil {
					return err
				}
				entry.ActualQty = line.QtyAfterTransaction.Sub(inventory.OpeningBalance(prev).Qty)
				entry.QtyAfterTransaction = line.QtyAfterTransaction
				entry.ValuationRate = line.ValuationRate
				args.ActualQty = entry.ActualQty
				args.QtyAfterTransaction = line.QtyAfterTransaction
			}
			if err := repos.Ledger.Create(ctx, entry); err != nil {
				return err
			}
			if err := svc.UpdateStock(ctx, bin, args, uc.options(in.ViaLandedCostVoucher)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().
		Str("voucher_type", in.VoucherType).
		Str("voucher_no", in.VoucherNo).
		Int("lines", len(in.Lines)).
		Msg("comprobante contabilizado en libro de stock")
	return in.VoucherNo, nil
}

// CancelVoucher anula los asientos de un comprobante: los marca cancelados, registra asientos
// de reverso y devuelve los bins a su estado previo.
func (uc *StockUseCase) CancelVoucher(ctx context.Context, voucherType, voucherNo string, viaLandedCostVoucher bool) error {
	if voucherType == "" || voucherNo == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		entries, err := repos.Ledger.ListByVoucher(ctx, voucherType, voucherNo)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("%w: comprobante %s %s", domain.ErrNotFound, voucherType, voucherNo)
		}
		for _, e := range entries {
			if e.IsCancelled {
				return fmt.Errorf("%w: comprobante %s ya cancelado", domain.ErrConflict, voucherNo)
			}
		}
		if err := repos.Ledger.MarkVoucherCancelled(ctx, voucherType, voucherNo); err != nil {
			return err
		}

		svc := NewBinService(repos, uc.log)
		for _, e := range entries {
			reverse := &entity.StockLedgerEntry{
				ID:                  uuid.New().String(),
				ItemCode:            e.ItemCode,
				Warehouse:           e.Warehouse,
				PostingAt:           e.PostingAt,
				VoucherType:         e.VoucherType,
				VoucherNo:           e.VoucherNo,
				ActualQty:           e.ActualQty.Neg(),
				QtyAfterTransaction: e.QtyAfterTransaction,
				IncomingRate:        e.IncomingRate,
				ValuationRate:       e.ValuationRate,
				IsCancelled:         true,
				CreatedAt:           uc.now(),
			}
			if err := repos.Ledger.Create(ctx, reverse); err != nil {
				return err
			}
			bin, err := repos.Bins.GetForUpdate(ctx, e.ItemCode, e.Warehouse)
			if err != nil {
				return err
			}
			if bin == nil {
				return fmt.Errorf("%w: bin %s en %s", domain.ErrNotFound, e.ItemCode, e.Warehouse)
			}
			if err := svc.UpdateStock(ctx, bin, StockArgs{
				VoucherType: e.VoucherType,
				VoucherNo:   e.VoucherNo,
				PostingAt:   e.PostingAt,
				IsCancelled: true,
				ActualQty:   reverse.ActualQty,
			}, uc.options(viaLandedCostVoucher)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("voucher_type", voucherType).Str("voucher_no", voucherNo).Msg("comprobante cancelado")
	return nil
}

func (uc *StockUseCase) options(viaLandedCostVoucher bool) UpdateStockOptions {
	return UpdateStockOptions{
		AllowNegativeStock:   uc.allowNegativeStock,
		ViaLandedCostVoucher: viaLandedCostVoucher,
	}
}

func validatePostInput(in PostEntriesInput) error {
	if in.VoucherType == "" || len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ItemCode == "" || l.Warehouse == "" {
			return domain.ErrInvalidInput
		}
		if l.IncomingRate.LessThan(decimal.Zero) || l.ValuationRate.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.VoucherType == entity.VoucherTypeStockReconciliation {
			if l.QtyAfterTransaction.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
		} else if l.ActualQty.IsZero() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// voucherPrefix abreviatura del tipo de comprobante, ej. "Stock Reconciliation" -> "SR".
func voucherPrefix(voucherType string) string {
	var b strings.Builder
	for _, w := range strings.Fields(voucherType) {
		b.WriteString(strings.ToUpper(w[:1]))
	}
	return b.String()
}
