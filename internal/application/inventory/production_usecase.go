package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/domain"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// ProductionOrderUseCase gestiona el ciclo de vida de las órdenes de producción y mantiene
// actualizada la reserva de producción de los bins de la bodega origen.
type ProductionOrderUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(txRunner TxRunner, log zerolog.Logger) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// ProductionOrderInput datos para crear una orden en borrador.
type ProductionOrderInput struct {
	ProductionItem  string
	Qty             decimal.Decimal
	SourceWarehouse string
	Items           []ProductionItemInput
}

// ProductionItemInput material requerido.
type ProductionItemInput struct {
	ItemCode    string
	RequiredQty decimal.Decimal
}

// TransferLine material transferido a producción.
type TransferLine struct {
	ItemCode string
	Qty      decimal.Decimal
}

// Create crea la orden en borrador. Un borrador no reserva stock.
func (uc *ProductionOrderUseCase) Create(ctx context.Context, in ProductionOrderInput) (*entity.ProductionOrder, error) {
	if in.ProductionItem == "" || in.SourceWarehouse == "" || len(in.Items) == 0 || !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	order := &entity.ProductionOrder{
		ID:              uuid.New().String(),
		ProductionItem:  in.ProductionItem,
		Qty:             in.Qty,
		SourceWarehouse: in.SourceWarehouse,
		DocStatus:       entity.DocStatusDraft,
		Status:          entity.ProductionStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, it := range in.Items {
		if it.ItemCode == "" || !it.RequiredQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		order.Items = append(order.Items, entity.ProductionOrderItem{
			ItemCode:       it.ItemCode,
			RequiredQty:    it.RequiredQty,
			TransferredQty: decimal.Zero,
		})
	}

	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		codes := []string{in.ProductionItem}
		for _, it := range order.Items {
			codes = append(codes, it.ItemCode)
		}
		for _, code := range codes {
			item, err := repos.Items.GetByCode(ctx, code)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, code)
			}
		}
		wh, err := repos.Warehouses.GetByID(ctx, in.SourceWarehouse)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.SourceWarehouse)
		}
		if wh.IsGroup {
			return fmt.Errorf("%w: %s", domain.ErrGroupWarehouse, in.SourceWarehouse)
		}
		return repos.Production.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get obtiene una orden por ID.
func (uc *ProductionOrderUseCase) Get(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		order, err = repos.Production.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// Submit somete la orden; desde aquí sus materiales pendientes quedan reservados.
func (uc *ProductionOrderUseCase) Submit(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return uc.transition(ctx, id, func(o *entity.ProductionOrder) error {
		if o.DocStatus != entity.DocStatusDraft {
			return domain.ErrInvalidDocStatus
		}
		o.DocStatus = entity.DocStatusSubmitted
		o.Status = entity.ProductionStatusNotStarted
		return nil
	})
}

// TransferMaterial registra la transferencia de materiales a producción.
func (uc *ProductionOrderUseCase) TransferMaterial(ctx context.Context, id string, lines []TransferLine) (*entity.ProductionOrder, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, id, func(o *entity.ProductionOrder) error {
		if o.DocStatus != entity.DocStatusSubmitted || o.Status == entity.ProductionStatusStopped {
			return domain.ErrInvalidDocStatus
		}
		for _, l := range lines {
			if !l.Qty.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			idx := -1
			for i := range o.Items {
				if o.Items[i].ItemCode == l.ItemCode {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("%w: %s no es material de la orden", domain.ErrInvalidInput, l.ItemCode)
			}
			o.Items[idx].TransferredQty = o.Items[idx].TransferredQty.Add(l.Qty)
		}
		o.Status = entity.ProductionStatusCompleted
		for _, it := range o.Items {
			if it.PendingQty().GreaterThan(decimal.Zero) {
				o.Status = entity.ProductionStatusInProcess
				break
			}
		}
		return nil
	})
}

// Stop detiene una orden sometida; deja de reservar stock.
func (uc *ProductionOrderUseCase) Stop(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return uc.transition(ctx, id, func(o *entity.ProductionOrder) error {
		if o.DocStatus != entity.DocStatusSubmitted {
			return domain.ErrInvalidDocStatus
		}
		o.Status = entity.ProductionStatusStopped
		return nil
	})
}

// Cancel anula una orden sometida.
func (uc *ProductionOrderUseCase) Cancel(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return uc.transition(ctx, id, func(o *entity.ProductionOrder) error {
		if o.DocStatus != entity.DocStatusSubmitted {
			return domain.ErrInvalidDocStatus
		}
		o.DocStatus = entity.DocStatusCancelled
		o.Status = entity.ProductionStatusCancelled
		return nil
	})
}

// transition aplica mutate, persiste la orden y recalcula la reserva de producción de cada
// material en la bodega origen, todo en la misma transacción.
func (uc *ProductionOrderUseCase) transition(ctx context.Context, id string, mutate func(o *entity.ProductionOrder) error) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		var err error
		order, err = repos.Production.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := mutate(order); err != nil {
			return err
		}
		order.UpdatedAt = uc.now()
		if err := repos.Production.Update(ctx, order); err != nil {
			return err
		}

		svc := NewBinService(repos, uc.log)
		seen := make(map[string]bool, len(order.Items))
		for _, it := range order.Items {
			if seen[it.ItemCode] {
				continue
			}
			seen[it.ItemCode] = true
			bin, err := svc.GetOrCreateBin(ctx, it.ItemCode, order.SourceWarehouse)
			if err != nil {
				return err
			}
			if err := svc.UpdateReservedQtyForProduction(ctx, bin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("production_order", order.ID).Str("status", order.Status).Msg("orden de producción actualizada")
	return order, nil
}
