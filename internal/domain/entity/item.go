package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario.
// TotalProjectedQty es la suma de ProjectedQty de todos sus bins.
type Item struct {
	Code              string // identificador único del artículo
	Name              string
	StockUOM          string // unidad de medida de inventario
	IsStockItem       bool
	TotalProjectedQty decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
