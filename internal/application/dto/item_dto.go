package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=140"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	StockUOM    string `json:"stock_uom"`
	IsStockItem *bool  `json:"is_stock_item"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	StockUOM          string          `json:"stock_uom"`
	IsStockItem       bool            `json:"is_stock_item"`
	TotalProjectedQty decimal.Decimal `json:"total_projected_qty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
