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

// StockArgs describe el efecto de una transacción sobre un bin.
// Los campos numéricos sin valor cuentan como cero.
type StockArgs struct {
	VoucherType         string
	VoucherNo           string
	PostingAt           time.Time // cero = ahora
	IsCancelled         bool
	ActualQty           decimal.Decimal
	QtyAfterTransaction decimal.Decimal // solo conciliaciones
	OrderedQty          decimal.Decimal
	ReservedQty         decimal.Decimal
	IndentedQty         decimal.Decimal
	PlannedQty          decimal.Decimal
}

// UpdateStockOptions opciones de UpdateStock.
type UpdateStockOptions struct {
	AllowNegativeStock   bool
	ViaLandedCostVoucher bool
}

// BinService aplica las reglas del bin usando repositorios de una transacción abierta.
// Se construye por transacción (ver StockUseCase).
type BinService struct {
	repos Repositories
	log   zerolog.Logger
	now   func() time.Time
}

// NewBinService construye el servicio sobre los repositorios de la transacción.
func NewBinService(repos Repositories, log zerolog.Logger) *BinService {
	return &BinService{repos: repos, log: log, now: time.Now}
}

// Validate prepara el bin para guardarse: toma la unidad de medida del artículo si el bin es
// nuevo o no la tiene, recalcula la cantidad proyectada y rechaza bodegas grupo.
// Un campo numérico sin valor ya es cero (valor cero de decimal.Decimal), no hace falta rellenarlo.
func (s *BinService) Validate(ctx context.Context, bin *entity.Bin, isNew bool) error {
	if bin.ItemCode == "" || bin.Warehouse == "" {
		return domain.ErrInvalidInput
	}
	if isNew || bin.StockUOM == "" {
		item, err := s.repos.Items.GetByCode(ctx, bin.ItemCode)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, bin.ItemCode)
		}
		bin.StockUOM = item.StockUOM
	}
	bin.SetProjectedQty()
	return s.blockGroupWarehouse(ctx, bin.Warehouse)
}

func (s *BinService) blockGroupWarehouse(ctx context.Context, warehouseID string) error {
	wh, err := s.repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	if wh.IsGroup {
		s.log.Warn().Str("warehouse", warehouseID).Msg("transacción rechazada en bodega grupo")
		return fmt.Errorf("%w: %s", domain.ErrGroupWarehouse, warehouseID)
	}
	return nil
}

// OnUpdate se ejecuta después de cada guardado del bin.
func (s *BinService) OnUpdate(ctx context.Context, bin *entity.Bin) error {
	return s.UpdateItemProjectedQty(ctx, bin.ItemCode)
}

// Save valida, persiste y dispara OnUpdate.
func (s *BinService) Save(ctx context.Context, bin *entity.Bin, isNew bool) error {
	if err := s.Validate(ctx, bin, isNew); err != nil {
		return err
	}
	bin.UpdatedAt = s.now()
	if isNew {
		if bin.ID == "" {
			bin.ID = uuid.New().String()
		}
		bin.CreatedAt = bin.UpdatedAt
		if err := s.repos.Bins.Create(ctx, bin); err != nil {
			return err
		}
	} else if err := s.repos.Bins.Update(ctx, bin); err != nil {
		return err
	}
	return s.OnUpdate(ctx, bin)
}

// GetOrCreateBin obtiene el bin con bloqueo de fila; si no existe lo crea en cero.
func (s *BinService) GetOrCreateBin(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	bin, err := s.repos.Bins.GetForUpdate(ctx, itemCode, warehouse)
	if err != nil {
		return nil, err
	}
	if bin != nil {
		return bin, nil
	}
	bin = &entity.Bin{ItemCode: itemCode, Warehouse: warehouse}
	if err := s.Save(ctx, bin, true); err != nil {
		return nil, err
	}
	return bin, nil
}

// UpdateStock aplica UpdateQty y, si la transacción mueve existencia física o es una
// conciliación, recalcula los asientos posteriores del libro. Las cancelaciones que llegan
// vía comprobante de costo en destino no recalculan.
func (s *BinService) UpdateStock(ctx context.Context, bin *entity.Bin, args StockArgs, opts UpdateStockOptions) error {
	if err := s.UpdateQty(ctx, bin, args); err != nil {
		return err
	}
	if args.ActualQty.IsZero() && args.VoucherType != entity.VoucherTypeStockReconciliation {
		return nil
	}
	if args.PostingAt.IsZero() {
		args.PostingAt = s.now()
	}
	if args.IsCancelled && opts.ViaLandedCostVoucher {
		return nil
	}
	return s.RepostEntriesAfter(ctx, bin, RepostArgs{
		PostingAt: args.PostingAt,
		VoucherNo: args.VoucherNo,
	}, opts.AllowNegativeStock, opts.ViaLandedCostVoucher)
}

// UpdateQty actualiza las cantidades actuales del bin y lo guarda.
// En conciliaciones la cantidad actual es absoluta; al cancelar una conciliación se toma
// el saldo del último asiento ajeno a ella (0 si no hay).
func (s *BinService) UpdateQty(ctx context.Context, bin *entity.Bin, args StockArgs) error {
	if args.VoucherType == entity.VoucherTypeStockReconciliation {
		if !args.IsCancelled {
			bin.ActualQty = args.QtyAfterTransaction
		} else {
			qty, found, err := s.repos.Ledger.LastQtyExcludingReconciliation(ctx, bin.ItemCode, bin.Warehouse, args.VoucherNo)
			if err != nil {
				return err
			}
			if !found {
				qty = decimal.Zero
			}
			bin.ActualQty = qty
		}
	} else {
		bin.ActualQty = bin.ActualQty.Add(args.ActualQty)
	}
	bin.ApplyDeltas(args.OrderedQty, args.ReservedQty, args.IndentedQty, args.PlannedQty)
	return s.Save(ctx, bin, false)
}

// GetFirstSLE devuelve el primer asiento del libro para el bin, o nil.
func (s *BinService) GetFirstSLE(ctx context.Context, bin *entity.Bin) (*entity.StockLedgerEntry, error) {
	return s.repos.Ledger.GetFirst(ctx, bin.ItemCode, bin.Warehouse)
}

// UpdateReservedQtyForProduction recalcula la cantidad reservada para producción desde las
// órdenes sometidas que consumen de esta bodega. Solo actualiza las dos columnas afectadas.
func (s *BinService) UpdateReservedQtyForProduction(ctx context.Context, bin *entity.Bin) error {
	reserved, err := s.repos.Production.SumPendingForWarehouse(ctx, bin.ItemCode, bin.Warehouse)
	if err != nil {
		return err
	}
	bin.ReservedQtyForProduction = reserved
	bin.SetProjectedQty()
	s.log.Debug().
		Str("item_code", bin.ItemCode).
		Str("warehouse", bin.Warehouse).
		Str("reserved_qty_for_production", reserved.String()).
		Msg("reserva de producción recalculada")
	return s.repos.Bins.SetReservedForProduction(ctx, bin.ItemCode, bin.Warehouse, bin.ReservedQtyForProduction, bin.ProjectedQty)
}

// UpdateItemProjectedQty fija total_projected_qty del artículo como la suma de los bins.
func (s *BinService) UpdateItemProjectedQty(ctx context.Context, itemCode string) error {
	total, err := s.repos.Bins.SumProjectedQty(ctx, itemCode)
	if err != nil {
		return err
	}
	return s.repos.Items.UpdateTotalProjectedQty(ctx, itemCode, total)
}
