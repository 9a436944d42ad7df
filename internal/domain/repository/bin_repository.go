package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// BinRepository define el puerto de persistencia para bins (artículo+bodega).
// Usado dentro de transacciones para garantizar consistencia.
type BinRepository interface {
	// Get devuelve nil, nil si el bin no existe.
	Get(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error)
	Create(ctx context.Context, bin *entity.Bin) error
	Update(ctx context.Context, bin *entity.Bin) error
	// SetReservedForProduction actualiza solo reserved_qty_for_production y projected_qty.
	SetReservedForProduction(ctx context.Context, itemCode, warehouse string, reserved, projected decimal.Decimal) error
	ListByItem(ctx context.Context, itemCode string) ([]*entity.Bin, error)
	// List lista bins; warehouse vacío = todas las bodegas.
	List(ctx context.Context, warehouse string) ([]*entity.Bin, error)
	// SumProjectedQty suma projected_qty de todos los bins del artículo (0 si no hay bins).
	SumProjectedQty(ctx context.Context, itemCode string) (decimal.Decimal, error)
}
