// Package pdf genera el reporte de saldos de inventario por bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + alcance    │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Bodega | UdM | Actual | Reserv. | ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: líneas / valor total                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateStockBalancePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockBalancePDF(
	_ context.Context,
	warehouse string,
	rows []inventory.StockBalanceRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Saldos de inventario", true).
		WithAuthor(nonEmpty(g.company, "Inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouse, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(warehouse string, generatedAt time.Time) core.Row {
	scope := "Todas las bodegas"
	if warehouse != "" {
		scope = "Bodega: " + warehouse
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SALDOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(scope, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("UdM", 1, align.Center),
		h("Actual", 1, align.Right),
		h("Reserv.", 1, align.Right),
		h("Pedido", 1, align.Right),
		h("Proyect.", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows una fila por bin; la cantidad proyectada negativa se resalta.
func tableDetailRows(rows []inventory.StockBalanceRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		b := r.Bin
		projected := props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1}
		if b.ProjectedQty.IsNegative() {
			projected.Color = colorRed
			projected.Style = fontstyle.Bold
		}
		label := b.ItemCode
		if r.ItemName != "" && r.ItemName != b.ItemCode {
			label += " - " + r.ItemName
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(b.Warehouse, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(b.StockUOM, props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(formatQty(b.ActualQty), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQty(b.ReservedQty), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQty(b.OrderedQty), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQty(b.ProjectedQty), projected)),
			col.New(2).Add(text.New("$"+formatQty(b.StockValue), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	if len(result) == 0 {
		result = append(result, row.New(10).Add(col.New(12).Add(
			text.New("Sin saldos registrados.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	return result
}

func totalsRow(rows []inventory.StockBalanceRow) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Bin.StockValue)
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Líneas: %d", len(rows)), props.Text{
			Size: 8, Color: colorGray, Top: 2, Left: 1,
		})),
		col.New(4).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New("$"+formatQty(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty dos decimales, puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50", -25 → "-25,00"
func formatQty(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if d.IsNegative() && !d.Round(2).IsZero() {
		out = "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string de dígitos.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
