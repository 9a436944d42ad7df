package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// Update persiste estado, docstatus y cantidades transferidas de los ítems.
	Update(ctx context.Context, order *entity.ProductionOrder) error
	// SumPendingForWarehouse suma (required - transferred) de órdenes sometidas y no detenidas
	// cuya bodega origen es warehouse, para el artículo itemCode. 0 si no hay.
	SumPendingForWarehouse(ctx context.Context, itemCode, warehouse string) (decimal.Decimal, error)
}
