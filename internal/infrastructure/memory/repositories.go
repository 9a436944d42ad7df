package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/repository"
)

// Los repositorios solo se obtienen dentro de Store.Run, con el mutex tomado.
var (
	_ repository.BinRepository             = (*binRepo)(nil)
	_ repository.ItemRepository            = (*itemRepo)(nil)
	_ repository.WarehouseRepository       = (*warehouseRepo)(nil)
	_ repository.StockLedgerRepository     = (*ledgerRepo)(nil)
	_ repository.ProductionOrderRepository = (*productionRepo)(nil)
)

type binRepo struct{ s *Store }

func (r *binRepo) Get(_ context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	b, ok := r.s.st.bins[binKey{itemCode, warehouse}]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *binRepo) GetForUpdate(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	return r.Get(ctx, itemCode, warehouse)
}

func (r *binRepo) Create(_ context.Context, b *entity.Bin) error {
	k := binKey{b.ItemCode, b.Warehouse}
	if _, ok := r.s.st.bins[k]; ok {
		return fmt.Errorf("%w: bin %s/%s", domain.ErrDuplicate, b.ItemCode, b.Warehouse)
	}
	if _, ok := r.s.st.items[b.ItemCode]; !ok {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, b.ItemCode)
	}
	if _, ok := r.s.st.warehouses[b.Warehouse]; !ok {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, b.Warehouse)
	}
	c := *b
	r.s.st.bins[k] = &c
	return nil
}

func (r *binRepo) Update(_ context.Context, b *entity.Bin) error {
	k := binKey{b.ItemCode, b.Warehouse}
	cur, ok := r.s.st.bins[k]
	if !ok {
		return fmt.Errorf("%w: bin %s/%s", domain.ErrNotFound, b.ItemCode, b.Warehouse)
	}
	c := *b
	c.ID = cur.ID
	c.CreatedAt = cur.CreatedAt
	r.s.st.bins[k] = &c
	return nil
}

func (r *binRepo) SetReservedForProduction(_ context.Context, itemCode, warehouse string, reserved, projected decimal.Decimal) error {
	b, ok := r.s.st.bins[binKey{itemCode, warehouse}]
	if !ok {
		return fmt.Errorf("%w: bin %s/%s", domain.ErrNotFound, itemCode, warehouse)
	}
	b.ReservedQtyForProduction = reserved
	b.ProjectedQty = projected
	b.UpdatedAt = time.Now()
	return nil
}

func (r *binRepo) ListByItem(_ context.Context, itemCode string) ([]*entity.Bin, error) {
	return r.filter(func(b *entity.Bin) bool { return b.ItemCode == itemCode }), nil
}

func (r *binRepo) List(_ context.Context, warehouse string) ([]*entity.Bin, error) {
	return r.filter(func(b *entity.Bin) bool { return warehouse == "" || b.Warehouse == warehouse }), nil
}

func (r *binRepo) filter(keep func(*entity.Bin) bool) []*entity.Bin {
	var list []*entity.Bin
	for _, b := range r.s.st.bins {
		if keep(b) {
			c := *b
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Warehouse != list[j].Warehouse {
			return list[i].Warehouse < list[j].Warehouse
		}
		return list[i].ItemCode < list[j].ItemCode
	})
	return list
}

func (r *binRepo) SumProjectedQty(_ context.Context, itemCode string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.s.st.bins {
		if b.ItemCode == itemCode {
			total = total.Add(b.ProjectedQty)
		}
	}
	return total, nil
}

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	if _, ok := r.s.st.items[item.Code]; ok {
		return fmt.Errorf("%w: artículo %s", domain.ErrDuplicate, item.Code)
	}
	c := *item
	r.s.st.items[item.Code] = &c
	return nil
}

func (r *itemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	it, ok := r.s.st.items[code]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *itemRepo) UpdateTotalProjectedQty(_ context.Context, code string, total decimal.Decimal) error {
	if it, ok := r.s.st.items[code]; ok {
		it.TotalProjectedQty = total
		it.UpdatedAt = time.Now()
	}
	return nil
}

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.s.st.warehouses[w.ID]; ok {
		return fmt.Errorf("%w: bodega %s", domain.ErrDuplicate, w.ID)
	}
	if w.ParentWarehouse != "" {
		if _, ok := r.s.st.warehouses[w.ParentWarehouse]; !ok {
			return fmt.Errorf("%w: bodega padre %s", domain.ErrNotFound, w.ParentWarehouse)
		}
	}
	c := *w
	r.s.st.warehouses[w.ID] = &c
	return nil
}

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.s.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *warehouseRepo) MarkGroup(_ context.Context, id string) error {
	w, ok := r.s.st.warehouses[id]
	if !ok {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	w.IsGroup = true
	w.UpdatedAt = time.Now()
	return nil
}

func (r *warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	ids := make([]string, 0, len(r.s.st.warehouses))
	for id := range r.s.st.warehouses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	list := make([]*entity.Warehouse, 0, len(ids))
	for _, id := range ids {
		c := *r.s.st.warehouses[id]
		list = append(list, &c)
	}
	return list, nil
}

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Create(_ context.Context, e *entity.StockLedgerEntry) error {
	c := *e
	r.s.st.ledger = append(r.s.st.ledger, &c)
	return nil
}

// chronological asientos del bin en orden posting_at y luego inserción.
func (r *ledgerRepo) chronological(itemCode, warehouse string, keep func(*entity.StockLedgerEntry) bool) []*entity.StockLedgerEntry {
	var list []*entity.StockLedgerEntry
	for _, e := range r.s.st.ledger {
		if e.ItemCode == itemCode && e.Warehouse == warehouse && keep(e) {
			list = append(list, e)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].PostingAt.Before(list[j].PostingAt) })
	return list
}

func copyEntry(e *entity.StockLedgerEntry) *entity.StockLedgerEntry {
	c := *e
	return &c
}

func (r *ledgerRepo) GetFirst(_ context.Context, itemCode, warehouse string) (*entity.StockLedgerEntry, error) {
	list := r.chronological(itemCode, warehouse, func(*entity.StockLedgerEntry) bool { return true })
	if len(list) == 0 {
		return nil, nil
	}
	return copyEntry(list[0]), nil
}

func (r *ledgerRepo) LastQtyExcludingReconciliation(_ context.Context, itemCode, warehouse, voucherNo string) (decimal.Decimal, bool, error) {
	list := r.chronological(itemCode, warehouse, func(e *entity.StockLedgerEntry) bool {
		return !e.IsCancelled && !(e.IsReconciliation() && e.VoucherNo == voucherNo)
	})
	if len(list) == 0 {
		return decimal.Zero, false, nil
	}
	return list[len(list)-1].QtyAfterTransaction, true, nil
}

func (r *ledgerRepo) GetPrevious(_ context.Context, itemCode, warehouse string, postingAt time.Time) (*entity.StockLedgerEntry, error) {
	list := r.chronological(itemCode, warehouse, func(e *entity.StockLedgerEntry) bool {
		return !e.IsCancelled && e.PostingAt.Before(postingAt)
	})
	if len(list) == 0 {
		return nil, nil
	}
	return copyEntry(list[len(list)-1]), nil
}

func (r *ledgerRepo) ListFrom(_ context.Context, itemCode, warehouse string, postingAt time.Time) ([]*entity.StockLedgerEntry, error) {
	list := r.chronological(itemCode, warehouse, func(e *entity.StockLedgerEntry) bool {
		return !e.IsCancelled && !e.PostingAt.Before(postingAt)
	})
	out := make([]*entity.StockLedgerEntry, 0, len(list))
	for _, e := range list {
		out = append(out, copyEntry(e))
	}
	return out, nil
}

func (r *ledgerRepo) UpdateBalances(_ context.Context, entries []*entity.StockLedgerEntry) error {
	byID := make(map[string]*entity.StockLedgerEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	for _, cur := range r.s.st.ledger {
		if e, ok := byID[cur.ID]; ok {
			cur.ActualQty = e.ActualQty
			cur.QtyAfterTransaction = e.QtyAfterTransaction
			cur.ValuationRate = e.ValuationRate
			cur.StockValue = e.StockValue
		}
	}
	return nil
}

func (r *ledgerRepo) ListByVoucher(_ context.Context, voucherType, voucherNo string) ([]*entity.StockLedgerEntry, error) {
	var list []*entity.StockLedgerEntry
	for _, e := range r.s.st.ledger {
		if e.VoucherType == voucherType && e.VoucherNo == voucherNo {
			list = append(list, copyEntry(e))
		}
	}
	return list, nil
}

func (r *ledgerRepo) MarkVoucherCancelled(_ context.Context, voucherType, voucherNo string) error {
	for _, e := range r.s.st.ledger {
		if e.VoucherType == voucherType && e.VoucherNo == voucherNo {
			e.IsCancelled = true
		}
	}
	return nil
}

type productionRepo struct{ s *Store }

func (r *productionRepo) Create(_ context.Context, o *entity.ProductionOrder) error {
	if _, ok := r.s.st.orders[o.ID]; ok {
		return fmt.Errorf("%w: orden de producción %s", domain.ErrDuplicate, o.ID)
	}
	r.s.st.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *productionRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *productionRepo) Update(_ context.Context, o *entity.ProductionOrder) error {
	if _, ok := r.s.st.orders[o.ID]; !ok {
		return fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, o.ID)
	}
	r.s.st.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *productionRepo) SumPendingForWarehouse(_ context.Context, itemCode, warehouse string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.s.st.orders {
		if o.SourceWarehouse != warehouse || !o.ReservesStock() {
			continue
		}
		for _, it := range o.Items {
			if it.ItemCode == itemCode {
				total = total.Add(it.PendingQty())
			}
		}
	}
	return total, nil
}
