package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// DefaultStockUOM unidad de medida cuando el artículo no trae una.
const DefaultStockUOM = "Nos"

// ItemUseCase casos de uso para artículos. Las cantidades se manejan vía bins.
type ItemUseCase struct {
	txRunner inventory.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner inventory.TxRunner) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner}
}

// Create crea un nuevo artículo. TotalProjectedQty inicia en 0.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.StockUOM == "" {
		in.StockUOM = DefaultStockUOM
	}
	isStock := true
	if in.IsStockItem != nil {
		isStock = *in.IsStockItem
	}
	now := time.Now()
	item := &entity.Item{
		Code:              in.Code,
		Name:              in.Name,
		StockUOM:          in.StockUOM,
		IsStockItem:       isStock,
		TotalProjectedQty: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.Repositories) error {
		return repos.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByCode obtiene un artículo por código. Devuelve nil, nil si no existe.
func (uc *ItemUseCase) GetByCode(ctx context.Context, code string) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(repos inventory.Repositories) error {
		var err error
		item, err = repos.Items.GetByCode(ctx, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		Code:              it.Code,
		Name:              it.Name,
		StockUOM:          it.StockUOM,
		IsStockItem:       it.IsStockItem,
		TotalProjectedQty: it.TotalProjectedQty,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}
