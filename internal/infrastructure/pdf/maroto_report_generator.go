// Package pdf implementa la generación del reporte de stock bajo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de productos en alerta                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Stock | Umbral | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.LowStockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.LowStockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockReport(
	_ context.Context,
	products []*repository.ProductRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock Bajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableProductRows(products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	fecha := generatedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Productos en o por debajo de su umbral mínimo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: total de productos en alerta.
func summaryRow(total int) core.Row {
	msg := fmt.Sprintf("%d producto(s) requieren reposición", total)
	if total == 0 {
		msg = "Sin productos en alerta de stock"
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(msg, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorAlert, Top: 2,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Umbral", 1, align.Center),
		h("Valor Unit.", 2, align.Right),
	)
}

// tableProductRows: una fila por producto en alerta.
func tableProductRows(products []*repository.ProductRow) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, r := range products {
		p := r.Product
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				p.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				p.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(r.CategoryName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Quantity),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorAlert},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.LowStockThreshold),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+p.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: leyenda de cierre.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Reporte generado automáticamente por el sistema de control de inventario. "+
				"Los umbrales de stock se configuran por producto.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
