package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BinResponse salida de un bin (artículo+bodega).
type BinResponse struct {
	ItemCode                 string          `json:"item_code"`
	Warehouse                string          `json:"warehouse"`
	StockUOM                 string          `json:"stock_uom"`
	ActualQty                decimal.Decimal `json:"actual_qty"`
	ReservedQty              decimal.Decimal `json:"reserved_qty"`
	OrderedQty               decimal.Decimal `json:"ordered_qty"`
	IndentedQty              decimal.Decimal `json:"indented_qty"`
	PlannedQty               decimal.Decimal `json:"planned_qty"`
	ReservedQtyForProduction decimal.Decimal `json:"reserved_qty_for_production"`
	ProjectedQty             decimal.Decimal `json:"projected_qty"`
	ValuationRate            decimal.Decimal `json:"valuation_rate"`
	StockValue               decimal.Decimal `json:"stock_value"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// BinListResponse bins de un artículo.
type BinListResponse struct {
	ItemCode string        `json:"item_code"`
	Items    []BinResponse `json:"items"`
}

// UpdateBinQtyRequest body para POST /api/bins/qty (deltas sin movimiento físico).
type UpdateBinQtyRequest struct {
	ItemCode    string          `json:"item_code"`
	Warehouse   string          `json:"warehouse"`
	VoucherType string          `json:"voucher_type"`
	VoucherNo   string          `json:"voucher_no"`
	OrderedQty  decimal.Decimal `json:"ordered_qty"`
	ReservedQty decimal.Decimal `json:"reserved_qty"`
	IndentedQty decimal.Decimal `json:"indented_qty"`
	PlannedQty  decimal.Decimal `json:"planned_qty"`
}

// BinRefRequest identifica un bin.
type BinRefRequest struct {
	ItemCode  string `json:"item_code"`
	Warehouse string `json:"warehouse"`
}

// LedgerLineRequest línea de un comprobante de stock.
type LedgerLineRequest struct {
	ItemCode            string          `json:"item_code"`
	Warehouse           string          `json:"warehouse"`
	ActualQty           decimal.Decimal `json:"actual_qty"`
	IncomingRate        decimal.Decimal `json:"incoming_rate"`
	QtyAfterTransaction decimal.Decimal `json:"qty_after_transaction"` // conciliaciones
	ValuationRate       decimal.Decimal `json:"valuation_rate"`        // conciliaciones
}

// PostLedgerEntriesRequest body para POST /api/stock/ledger-entries.
type PostLedgerEntriesRequest struct {
	VoucherType          string              `json:"voucher_type"`
	VoucherNo            string              `json:"voucher_no,omitempty"`
	PostingDate          string              `json:"posting_date,omitempty"` // YYYY-MM-DD, vacío = hoy
	PostingTime          string              `json:"posting_time,omitempty"` // HH:MM:SS
	ViaLandedCostVoucher bool                `json:"via_landed_cost_voucher,omitempty"`
	Lines                []LedgerLineRequest `json:"lines"`
}

// PostLedgerEntriesResponse resultado de la contabilización.
type PostLedgerEntriesResponse struct {
	VoucherType string `json:"voucher_type"`
	VoucherNo   string `json:"voucher_no"`
}

// CancelVoucherRequest body para POST /api/stock/vouchers/cancel.
type CancelVoucherRequest struct {
	VoucherType          string `json:"voucher_type"`
	VoucherNo            string `json:"voucher_no"`
	ViaLandedCostVoucher bool   `json:"via_landed_cost_voucher,omitempty"`
}

// LedgerEntryResponse salida de un asiento del libro de stock.
type LedgerEntryResponse struct {
	ID                  string          `json:"id"`
	ItemCode            string          `json:"item_code"`
	Warehouse           string          `json:"warehouse"`
	PostingDate         string          `json:"posting_date"`
	PostingTime         string          `json:"posting_time"`
	VoucherType         string          `json:"voucher_type"`
	VoucherNo           string          `json:"voucher_no"`
	ActualQty           decimal.Decimal `json:"actual_qty"`
	QtyAfterTransaction decimal.Decimal `json:"qty_after_transaction"`
	ValuationRate       decimal.Decimal `json:"valuation_rate"`
	StockValue          decimal.Decimal `json:"stock_value"`
	IsCancelled         bool            `json:"is_cancelled"`
}

// ProductionOrderItemRequest material requerido.
type ProductionOrderItemRequest struct {
	ItemCode    string          `json:"item_code"`
	RequiredQty decimal.Decimal `json:"required_qty"`
}

// CreateProductionOrderRequest body para POST /api/production-orders.
type CreateProductionOrderRequest struct {
	ProductionItem  string                       `json:"production_item"`
	Qty             decimal.Decimal              `json:"qty"`
	SourceWarehouse string                       `json:"source_warehouse"`
	Items           []ProductionOrderItemRequest `json:"items"`
}

// TransferMaterialRequest body para POST /api/production-orders/:id/transfer.
type TransferMaterialRequest struct {
	Items []struct {
		ItemCode string          `json:"item_code"`
		Qty      decimal.Decimal `json:"qty"`
	} `json:"items"`
}

// ProductionOrderItemResponse material de la orden.
type ProductionOrderItemResponse struct {
	ItemCode       string          `json:"item_code"`
	RequiredQty    decimal.Decimal `json:"required_qty"`
	TransferredQty decimal.Decimal `json:"transferred_qty"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID              string                        `json:"id"`
	ProductionItem  string                        `json:"production_item"`
	Qty             decimal.Decimal               `json:"qty"`
	SourceWarehouse string                        `json:"source_warehouse"`
	DocStatus       int                           `json:"docstatus"`
	Status          string                        `json:"status"`
	Items           []ProductionOrderItemResponse `json:"items"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}
