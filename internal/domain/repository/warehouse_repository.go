package repository

import (
	"context"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	MarkGroup(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
