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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (code, name, stock_uom, is_stock_item, total_projected_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.Code, item.Name, item.StockUOM, item.IsStockItem, item.TotalProjectedQty,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: artículo %s", domain.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByCode obtiene un artículo por código.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	query := `
		SELECT code, name, stock_uom, is_stock_item, total_projected_qty, created_at, updated_at
		FROM items WHERE code = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, code).Scan(
		&it.Code, &it.Name, &it.StockUOM, &it.IsStockItem, &it.TotalProjectedQty, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// UpdateTotalProjectedQty fija la cantidad proyectada total del artículo.
func (r *ItemRepo) UpdateTotalProjectedQty(ctx context.Context, code string, total decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE items SET total_projected_qty = $2, updated_at = now() WHERE code = $1`, code, total)
	if err != nil {
		return fmt.Errorf("update total projected qty: %w", err)
	}
	return nil
}
