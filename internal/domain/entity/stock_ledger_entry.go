package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante que afectan el libro de stock.
const (
	VoucherTypeStockReconciliation = "Stock Reconciliation" // fija la cantidad absoluta
	VoucherTypeLandedCostVoucher   = "Landed Cost Voucher"
	VoucherTypeStockEntry          = "Stock Entry"
	VoucherTypePurchaseReceipt     = "Purchase Receipt"
	VoucherTypeDeliveryNote        = "Delivery Note"
	VoucherTypePurchaseOrder       = "Purchase Order"
	VoucherTypeSalesOrder          = "Sales Order"
	VoucherTypeMaterialRequest     = "Material Request"
	VoucherTypeProductionOrder     = "Production Order"
)

// StockLedgerEntry representa un asiento del libro de stock para un artículo en una bodega.
type StockLedgerEntry struct {
	ID                  string
	ItemCode            string
	Warehouse           string
	PostingAt           time.Time // fecha + hora de contabilización
	VoucherType         string
	VoucherNo           string
	ActualQty           decimal.Decimal // positivo entrada, negativo salida
	QtyAfterTransaction decimal.Decimal
	IncomingRate        decimal.Decimal
	ValuationRate       decimal.Decimal
	StockValue          decimal.Decimal
	IsCancelled         bool
	CreatedAt           time.Time
}

// IsReconciliation indica si el asiento proviene de una conciliación de stock.
func (e *StockLedgerEntry) IsReconciliation() bool {
	return e.VoucherType == VoucherTypeStockReconciliation
}
