package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByCode devuelve nil, nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	UpdateTotalProjectedQty(ctx context.Context, code string, total decimal.Decimal) error
}
