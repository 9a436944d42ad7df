package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL.
// Los materiales viven en production_order_items.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste la orden y sus materiales.
func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, production_item, qty, source_warehouse, docstatus, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.ProductionItem, o.Qty, o.SourceWarehouse, o.DocStatus, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo o bodega de la orden", domain.ErrNotFound)
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO production_order_items (production_order_id, idx, item_code, required_qty, transferred_qty)
			VALUES ($1, $2, $3, $4, $5)`,
			o.ID, i, it.ItemCode, it.RequiredQty, it.TransferredQty,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, it.ItemCode)
			}
			return fmt.Errorf("insert production order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus materiales.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, production_item, qty, source_warehouse, docstatus, status, created_at, updated_at
		FROM production_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.ProductionItem, &o.Qty, &o.SourceWarehouse, &o.DocStatus, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT item_code, required_qty, transferred_qty
		FROM production_order_items WHERE production_order_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("list production order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ProductionOrderItem
		if err := rows.Scan(&it.ItemCode, &it.RequiredQty, &it.TransferredQty); err != nil {
			return nil, fmt.Errorf("scan production order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update persiste estado, docstatus y cantidades transferidas.
func (r *ProductionOrderRepo) Update(ctx context.Context, o *entity.ProductionOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_orders SET docstatus = $2, status = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.DocStatus, o.Status, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, o.ID)
	}
	for i, it := range o.Items {
		if _, err := r.q.Exec(ctx, `
			UPDATE production_order_items SET transferred_qty = $3
			WHERE production_order_id = $1 AND idx = $2`,
			o.ID, i, it.TransferredQty,
		); err != nil {
			return fmt.Errorf("update production order item: %w", err)
		}
	}
	return nil
}

// SumPendingForWarehouse suma lo pendiente de transferir en órdenes sometidas y no detenidas.
// El filtro SQL es la traducción de entity.ProductionOrder.ReservesStock.
func (r *ProductionOrderRepo) SumPendingForWarehouse(ctx context.Context, itemCode, warehouse string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(i.required_qty - i.transferred_qty), 0)
		FROM production_order_items i
		JOIN production_orders o ON o.id = i.production_order_id
		WHERE i.item_code = $1 AND o.source_warehouse = $2
			AND o.docstatus = $3 AND o.status <> $4`,
		itemCode, warehouse, entity.DocStatusSubmitted, entity.ProductionStatusStopped,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pending production qty: %w", err)
	}
	return total, nil
}
