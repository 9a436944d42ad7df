package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
	"github.com/jhoicas/Inventario-bins/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Bins       repository.BinRepository
	Items      repository.ItemRepository
	Warehouses repository.WarehouseRepository
	Ledger     repository.StockLedgerRepository
	Production repository.ProductionOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// StockBalanceRow línea del reporte de saldos por bodega.
type StockBalanceRow struct {
	Bin      *entity.Bin
	ItemName string
}

// StockReportGenerator genera la representación PDF del reporte de saldos.
type StockReportGenerator interface {
	GenerateStockBalancePDF(ctx context.Context, warehouse string, rows []StockBalanceRow, generatedAt time.Time) ([]byte, error)
}
