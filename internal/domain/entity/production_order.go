package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado documental (docstatus).
const (
	DocStatusDraft     = 0
	DocStatusSubmitted = 1
	DocStatusCancelled = 2
)

// Estados de una orden de producción.
const (
	ProductionStatusDraft      = "Draft"
	ProductionStatusNotStarted = "Not Started"
	ProductionStatusInProcess  = "In Process"
	ProductionStatusCompleted  = "Completed"
	ProductionStatusStopped    = "Stopped"
	ProductionStatusCancelled  = "Cancelled"
)

// ProductionOrder representa una orden de producción que consume materiales de una bodega origen.
type ProductionOrder struct {
	ID              string
	ProductionItem  string
	Qty             decimal.Decimal
	SourceWarehouse string
	DocStatus       int
	Status          string
	Items           []ProductionOrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductionOrderItem material requerido por la orden.
type ProductionOrderItem struct {
	ItemCode       string
	RequiredQty    decimal.Decimal
	TransferredQty decimal.Decimal
}

// PendingQty cantidad aún no transferida a producción.
func (i ProductionOrderItem) PendingQty() decimal.Decimal {
	return i.RequiredQty.Sub(i.TransferredQty)
}

// ReservesStock indica si la orden cuenta para la reserva de producción.
func (o *ProductionOrder) ReservesStock() bool {
	return o.DocStatus == DocStatusSubmitted && o.Status != ProductionStatusStopped
}
