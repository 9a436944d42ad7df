package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// ParsePostingAt combina fecha (YYYY-MM-DD) y hora (HH:MM[:SS]) de contabilización en loc.
// Fecha vacía devuelve el instante cero (el caso de uso usa la hora actual).
func ParsePostingAt(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, nil
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00:00"
	} else if strings.Count(clock, ":") == 1 {
		clock += ":00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha/hora de contabilización %q %q", domain.ErrInvalidInput, date, clock)
	}
	return t, nil
}

// PostEntriesInputFromRequest traduce el body HTTP al comprobante de stock.
func PostEntriesInputFromRequest(req dto.PostLedgerEntriesRequest, loc *time.Location) (PostEntriesInput, error) {
	at, err := ParsePostingAt(req.PostingDate, req.PostingTime, loc)
	if err != nil {
		return PostEntriesInput{}, err
	}
	in := PostEntriesInput{
		VoucherType:          req.VoucherType,
		VoucherNo:            req.VoucherNo,
		PostingAt:            at,
		ViaLandedCostVoucher: req.ViaLandedCostVoucher,
		Lines:                make([]LedgerLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, LedgerLine{
			ItemCode:            l.ItemCode,
			Warehouse:           l.Warehouse,
			ActualQty:           l.ActualQty,
			IncomingRate:        l.IncomingRate,
			QtyAfterTransaction: l.QtyAfterTransaction,
			ValuationRate:       l.ValuationRate,
		})
	}
	return in, nil
}

// ProductionOrderInputFromRequest traduce el body HTTP de creación de orden.
func ProductionOrderInputFromRequest(req dto.CreateProductionOrderRequest) ProductionOrderInput {
	in := ProductionOrderInput{
		ProductionItem:  req.ProductionItem,
		Qty:             req.Qty,
		SourceWarehouse: req.SourceWarehouse,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, ProductionItemInput{ItemCode: it.ItemCode, RequiredQty: it.RequiredQty})
	}
	return in
}

// TransferLinesFromRequest traduce el body HTTP de transferencia de material.
func TransferLinesFromRequest(req dto.TransferMaterialRequest) []TransferLine {
	lines := make([]TransferLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, TransferLine{ItemCode: it.ItemCode, Qty: it.Qty})
	}
	return lines
}

// ToBinResponse salida HTTP de un bin.
func ToBinResponse(b *entity.Bin) dto.BinResponse {
	return dto.BinResponse{
		ItemCode:                 b.ItemCode,
		Warehouse:                b.Warehouse,
		StockUOM:                 b.StockUOM,
		ActualQty:                b.ActualQty,
		ReservedQty:              b.ReservedQty,
		OrderedQty:               b.OrderedQty,
		IndentedQty:              b.IndentedQty,
		PlannedQty:               b.PlannedQty,
		ReservedQtyForProduction: b.ReservedQtyForProduction,
		ProjectedQty:             b.ProjectedQty,
		ValuationRate:            b.ValuationRate,
		StockValue:               b.StockValue,
		UpdatedAt:                b.UpdatedAt,
	}
}

// ToLedgerEntryResponse salida HTTP de un asiento.
func ToLedgerEntryResponse(e *entity.StockLedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:                  e.ID,
		ItemCode:            e.ItemCode,
		Warehouse:           e.Warehouse,
		PostingDate:         e.PostingAt.Format("2006-01-02"),
		PostingTime:         e.PostingAt.Format("15:04:05"),
		VoucherType:         e.VoucherType,
		VoucherNo:           e.VoucherNo,
		ActualQty:           e.ActualQty,
		QtyAfterTransaction: e.QtyAfterTransaction,
		ValuationRate:       e.ValuationRate,
		StockValue:          e.StockValue,
		IsCancelled:         e.IsCancelled,
	}
}

// ToProductionOrderResponse salida HTTP de una orden de producción.
func ToProductionOrderResponse(o *entity.ProductionOrder) dto.ProductionOrderResponse {
	out := dto.ProductionOrderResponse{
		ID:              o.ID,
		ProductionItem:  o.ProductionItem,
		Qty:             o.Qty,
		SourceWarehouse: o.SourceWarehouse,
		DocStatus:       o.DocStatus,
		Status:          o.Status,
		Items:           make([]dto.ProductionOrderItemResponse, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.ProductionOrderItemResponse{
			ItemCode:       it.ItemCode,
			RequiredQty:    it.RequiredQty,
			TransferredQty: it.TransferredQty,
		})
	}
	return out
}
