package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-bins/internal/application/dto"
	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/application/usecase"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

// openingRow línea del archivo de saldos iniciales.
type openingRow struct {
	ItemCode      string
	ItemName      string
	StockUOM      string
	Warehouse     string
	Qty           decimal.Decimal
	ValuationRate decimal.Decimal
}

var openingHeader = []string{"item_code", "item_name", "stock_uom", "warehouse", "qty", "valuation_rate"}

// decodeReader envuelve r según la codificación del archivo ("utf8" o "latin1").
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada %q", encoding)
}

// parseOpening lee el CSV separado por ';' con encabezado. decimalComma interpreta
// "1.234,50" como 1234.50.
func parseOpening(r io.Reader, decimalComma bool) ([]openingRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(openingHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF"), openingHeader[i]) {
			return nil, fmt.Errorf("encabezado: columna %d es %q, se esperaba %q", i+1, h, openingHeader[i])
		}
	}

	var rows []openingRow
	seen := make(map[string]int)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row := openingRow{
			ItemCode:  strings.TrimSpace(rec[0]),
			ItemName:  strings.TrimSpace(rec[1]),
			StockUOM:  strings.TrimSpace(rec[2]),
			Warehouse: strings.TrimSpace(rec[3]),
		}
		if row.ItemCode == "" || row.Warehouse == "" {
			return nil, fmt.Errorf("línea %d: item_code y warehouse son requeridos", line)
		}
		if row.Qty, err = parseNumber(rec[4], decimalComma); err != nil {
			return nil, fmt.Errorf("línea %d: qty: %w", line, err)
		}
		if row.ValuationRate, err = parseNumber(rec[5], decimalComma); err != nil {
			return nil, fmt.Errorf("línea %d: valuation_rate: %w", line, err)
		}
		if row.Qty.IsNegative() || row.ValuationRate.IsNegative() {
			return nil, fmt.Errorf("línea %d: cantidades negativas no permitidas", line)
		}
		key := row.ItemCode + "\x00" + row.Warehouse
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("línea %d: %s en %s repetido (línea %d)", line, row.ItemCode, row.Warehouse, prev)
		}
		seen[key] = line
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("el archivo no tiene líneas")
	}
	return rows, nil
}

func parseNumber(s string, decimalComma bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if decimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// importOpening crea los artículos y bodegas faltantes y contabiliza todas las líneas como
// una sola conciliación de stock. Devuelve el número de comprobante. allowNegative es el
// mismo permiso de stock negativo que usa la API.
func importOpening(ctx context.Context, txRunner inventory.TxRunner, rows []openingRow, date, voucherNo string, allowNegative bool, loc *time.Location, log zerolog.Logger) (string, error) {
	postingAt, err := inventory.ParsePostingAt(date, "", loc)
	if err != nil {
		return "", err
	}
	items := usecase.NewItemUseCase(txRunner)
	warehouses := usecase.NewWarehouseUseCase(txRunner)

	createdItems := make(map[string]bool)
	createdWarehouses := make(map[string]bool)
	for _, row := range rows {
		if !createdItems[row.ItemCode] {
			it, err := items.GetByCode(ctx, row.ItemCode)
			if err != nil {
				return "", err
			}
			if it == nil {
				name := row.ItemName
				if name == "" {
					name = row.ItemCode
				}
				if _, err := items.Create(ctx, dto.CreateItemRequest{Code: row.ItemCode, Name: name, StockUOM: row.StockUOM}); err != nil {
					return "", fmt.Errorf("crear artículo %s: %w", row.ItemCode, err)
				}
				log.Info().Str("item_code", row.ItemCode).Msg("artículo creado")
			}
			createdItems[row.ItemCode] = true
		}
		if !createdWarehouses[row.Warehouse] {
			wh, err := warehouses.GetByID(ctx, row.Warehouse)
			if err != nil {
				return "", err
			}
			if wh == nil {
				if _, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{ID: row.Warehouse}); err != nil {
					return "", fmt.Errorf("crear bodega %s: %w", row.Warehouse, err)
				}
				log.Info().Str("warehouse", row.Warehouse).Msg("bodega creada")
			}
			createdWarehouses[row.Warehouse] = true
		}
	}

	in := inventory.PostEntriesInput{
		VoucherType: entity.VoucherTypeStockReconciliation,
		VoucherNo:   voucherNo,
		PostingAt:   postingAt,
		Lines:       make([]inventory.LedgerLine, 0, len(rows)),
	}
	for _, row := range rows {
		in.Lines = append(in.Lines, inventory.LedgerLine{
			ItemCode:            row.ItemCode,
			Warehouse:           row.Warehouse,
			QtyAfterTransaction: row.Qty,
			ValuationRate:       row.ValuationRate,
		})
	}
	stock := inventory.NewStockUseCase(txRunner, allowNegative, log)
	return stock.PostLedgerEntries(ctx, in)
}
