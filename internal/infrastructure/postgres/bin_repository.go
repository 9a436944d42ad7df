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

var _ repository.BinRepository = (*BinRepo)(nil)

const binColumns = `id, item_code, warehouse, stock_uom, actual_qty, reserved_qty, ordered_qty,
	indented_qty, planned_qty, reserved_qty_for_production, projected_qty,
	valuation_rate, stock_value, created_at, updated_at`

// BinRepo implementación de BinRepository sobre PostgreSQL (usable con pool o tx).
type BinRepo struct {
	q Querier
}

// NewBinRepository construye el adaptador de bins. Pasar pool o tx (Querier).
func NewBinRepository(q Querier) *BinRepo {
	return &BinRepo{q: q}
}

func scanBin(row pgx.Row) (*entity.Bin, error) {
	var b entity.Bin
	err := row.Scan(
		&b.ID, &b.ItemCode, &b.Warehouse, &b.StockUOM, &b.ActualQty, &b.ReservedQty, &b.OrderedQty,
		&b.IndentedQty, &b.PlannedQty, &b.ReservedQtyForProduction, &b.ProjectedQty,
		&b.ValuationRate, &b.StockValue, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get obtiene el bin de un artículo en una bodega.
func (r *BinRepo) Get(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE item_code = $1 AND warehouse = $2`
	b, err := scanBin(r.q.QueryRow(ctx, query, itemCode, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bin: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el bin y bloquea la fila para update (SELECT FOR UPDATE).
func (r *BinRepo) GetForUpdate(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE item_code = $1 AND warehouse = $2 FOR UPDATE`
	b, err := scanBin(r.q.QueryRow(ctx, query, itemCode, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bin for update: %w", err)
	}
	return b, nil
}

// Create inserta un bin nuevo. Un par artículo+bodega repetido devuelve ErrDuplicate.
func (r *BinRepo) Create(ctx context.Context, b *entity.Bin) error {
	query := `
		INSERT INTO bins (` + binColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ItemCode, b.Warehouse, b.StockUOM, b.ActualQty, b.ReservedQty, b.OrderedQty,
		b.IndentedQty, b.PlannedQty, b.ReservedQtyForProduction, b.ProjectedQty,
		b.ValuationRate, b.StockValue, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bin %s/%s", domain.ErrDuplicate, b.ItemCode, b.Warehouse)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo o bodega del bin", domain.ErrNotFound)
		}
		return fmt.Errorf("insert bin: %w", err)
	}
	return nil
}

// Update persiste todas las cantidades del bin.
func (r *BinRepo) Update(ctx context.Context, b *entity.Bin) error {
	query := `
		UPDATE bins SET stock_uom = $3, actual_qty = $4, reserved_qty = $5, ordered_qty = $6,
			indented_qty = $7, planned_qty = $8, reserved_qty_for_production = $9,
			projected_qty = $10, valuation_rate = $11, stock_value = $12, updated_at = $13
		WHERE item_code = $1 AND warehouse = $2`
	cmd, err := r.q.Exec(ctx, query,
		b.ItemCode, b.Warehouse, b.StockUOM, b.ActualQty, b.ReservedQty, b.OrderedQty,
		b.IndentedQty, b.PlannedQty, b.ReservedQtyForProduction,
		b.ProjectedQty, b.ValuationRate, b.StockValue, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bin: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: bin %s/%s", domain.ErrNotFound, b.ItemCode, b.Warehouse)
	}
	return nil
}

// SetReservedForProduction actualiza solo reserved_qty_for_production y projected_qty.
func (r *BinRepo) SetReservedForProduction(ctx context.Context, itemCode, warehouse string, reserved, projected decimal.Decimal) error {
	query := `
		UPDATE bins SET reserved_qty_for_production = $3, projected_qty = $4, updated_at = now()
		WHERE item_code = $1 AND warehouse = $2`
	cmd, err := r.q.Exec(ctx, query, itemCode, warehouse, reserved, projected)
	if err != nil {
		return fmt.Errorf("set reserved for production: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: bin %s/%s", domain.ErrNotFound, itemCode, warehouse)
	}
	return nil
}

// ListByItem lista los bins de un artículo ordenados por bodega.
func (r *BinRepo) ListByItem(ctx context.Context, itemCode string) ([]*entity.Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE item_code = $1 ORDER BY warehouse`
	return r.list(ctx, query, itemCode)
}

// List lista bins; warehouse vacío = todas las bodegas.
func (r *BinRepo) List(ctx context.Context, warehouse string) ([]*entity.Bin, error) {
	if warehouse == "" {
		return r.list(ctx, `SELECT `+binColumns+` FROM bins ORDER BY warehouse, item_code`)
	}
	return r.list(ctx, `SELECT `+binColumns+` FROM bins WHERE warehouse = $1 ORDER BY item_code`, warehouse)
}

func (r *BinRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Bin, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bins: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bin
	for rows.Next() {
		b, err := scanBin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bin: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SumProjectedQty suma projected_qty de todos los bins del artículo.
func (r *BinRepo) SumProjectedQty(ctx context.Context, itemCode string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(projected_qty), 0) FROM bins WHERE item_code = $1`, itemCode,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum projected qty: %w", err)
	}
	return total, nil
}
