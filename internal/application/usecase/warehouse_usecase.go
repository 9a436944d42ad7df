package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// WarehouseUseCase casos de uso para el árbol de bodegas.
type WarehouseUseCase struct {
	txRunner inventory.TxRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner inventory.TxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner}
}

// Create crea una nueva bodega. Si tiene padre, el padre pasa a ser bodega grupo.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Name == "" {
		in.Name = in.ID
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:              in.ID,
		Name:            in.Name,
		ParentWarehouse: strings.TrimSpace(in.ParentWarehouse),
		IsGroup:         in.IsGroup,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.Repositories) error {
		if warehouse.ParentWarehouse != "" {
			parent, err := repos.Warehouses.GetByID(ctx, warehouse.ParentWarehouse)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: bodega padre %s", domain.ErrNotFound, warehouse.ParentWarehouse)
			}
			if !parent.IsGroup {
				if err := repos.Warehouses.MarkGroup(ctx, parent.ID); err != nil {
					return err
				}
			}
		}
		return repos.Warehouses.Create(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID. Devuelve nil, nil si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	var warehouse *entity.Warehouse
	err := uc.txRunner.Run(ctx, func(repos inventory.Repositories) error {
		var err error
		warehouse, err = repos.Warehouses.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) (*dto.WarehouseListResponse, error) {
	var list []*entity.Warehouse
	err := uc.txRunner.Run(ctx, func(repos inventory.Repositories) error {
		var err error
		list, err = repos.Warehouses.List(ctx, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:              w.ID,
		Name:            w.Name,
		ParentWarehouse: w.ParentWarehouse,
		IsGroup:         w.IsGroup,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}
