package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bin representa las cantidades de un artículo en una bodega (una fila por par artículo+bodega).
// ProjectedQty es derivado; se recalcula en cada mutación con SetProjectedQty.
type Bin struct {
	ID                       string
	ItemCode                 string
	Warehouse                string
	StockUOM                 string
	ActualQty                decimal.Decimal // existencia física
	ReservedQty              decimal.Decimal // comprometido en órdenes de venta
	OrderedQty               decimal.Decimal // pedido a proveedores, pendiente de recibir
	IndentedQty              decimal.Decimal // solicitado en requisiciones de material
	PlannedQty               decimal.Decimal // planeado en órdenes de producción
	ReservedQtyForProduction decimal.Decimal // pendiente de transferir a producción
	ProjectedQty             decimal.Decimal
	ValuationRate            decimal.Decimal
	StockValue               decimal.Decimal
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// SetProjectedQty recalcula la cantidad proyectada:
// actual + pedida + requisitada + planeada - reservada - reservada para producción.
func (b *Bin) SetProjectedQty() {
	b.ProjectedQty = b.ActualQty.
		Add(b.OrderedQty).
		Add(b.IndentedQty).
		Add(b.PlannedQty).
		Sub(b.ReservedQty).
		Sub(b.ReservedQtyForProduction)
}

// ApplyDeltas suma los deltas de pedido, reserva, requisición y planeación.
// La cantidad actual se maneja aparte porque depende del tipo de comprobante.
func (b *Bin) ApplyDeltas(ordered, reserved, indented, planned decimal.Decimal) {
	b.OrderedQty = b.OrderedQty.Add(ordered)
	b.ReservedQty = b.ReservedQty.Add(reserved)
	b.IndentedQty = b.IndentedQty.Add(indented)
	b.PlannedQty = b.PlannedQty.Add(planned)
}
