package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-bins/internal/domain"
)

// ReportUseCase genera el reporte PDF de saldos por bodega.
type ReportUseCase struct {
	txRunner  TxRunner
	generator StockReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(txRunner TxRunner, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{txRunner: txRunner, generator: generator, now: time.Now}
}

// StockBalancePDF devuelve el PDF y el nombre de archivo sugerido.
// warehouse vacío = todas las bodegas.
func (uc *ReportUseCase) StockBalancePDF(ctx context.Context, warehouse string) ([]byte, string, error) {
	var rows []StockBalanceRow
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if warehouse != "" {
			wh, err := repos.Warehouses.GetByID(ctx, warehouse)
			if err != nil {
				return err
			}
			if wh == nil {
				return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouse)
			}
		}
		bins, err := repos.Bins.List(ctx, warehouse)
		if err != nil {
			return err
		}
		names := make(map[string]string)
		for _, b := range bins {
			name, ok := names[b.ItemCode]
			if !ok {
				item, err := repos.Items.GetByCode(ctx, b.ItemCode)
				if err != nil {
					return err
				}
				if item != nil {
					name = item.Name
				}
				names[b.ItemCode] = name
			}
			rows = append(rows, StockBalanceRow{Bin: b, ItemName: name})
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Bin.Warehouse != rows[j].Bin.Warehouse {
			return rows[i].Bin.Warehouse < rows[j].Bin.Warehouse
		}
		return rows[i].Bin.ItemCode < rows[j].Bin.ItemCode
	})

	generatedAt := uc.now()
	pdf, err := uc.generator.GenerateStockBalancePDF(ctx, warehouse, rows, generatedAt)
	if err != nil {
		return nil, "", err
	}
	scope := "todas"
	if warehouse != "" {
		scope = strings.NewReplacer(" ", "_", "/", "_").Replace(warehouse)
	}
	filename := fmt.Sprintf("saldos_%s_%s.pdf", scope, generatedAt.Format("20060102"))
	return pdf, filename, nil
}
