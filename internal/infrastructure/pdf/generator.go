// Package pdf genera los PDF del autoservicio con Maroto v2: ticket de venta,
// reporte de inventario (producto contra último conteo) y reporte de ventas.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLight   = &props.Color{Red: 235, Green: 240, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ ports.TicketRenderer          = (*MarotoGenerator)(nil)
	_ ports.InventoryReportRenderer = (*MarotoGenerator)(nil)
	_ ports.SalesReportRenderer     = (*MarotoGenerator)(nil)
)

// MarotoGenerator implementa los renderizadores PDF usando Maroto v2.
type MarotoGenerator struct {
	author string
}

// NewMarotoGenerator construye el generador. author se escribe en los metadatos del PDF.
func NewMarotoGenerator(author string) *MarotoGenerator {
	return &MarotoGenerator{author: author}
}

func (g *MarotoGenerator) newDocument(title string, size pagesize.Type) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(size).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// titleRow título centrado con subtítulo opcional.
func titleRow(title, subtitle string) core.Row {
	c := col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 1,
	}))
	if subtitle != "" {
		c.Add(text.New(subtitle, props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 10}))
	}
	return row.New(18).Add(c)
}

// sectionRow etiqueta de sección.
func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

// textRow línea de texto simple.
func textRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 9, Top: 1})))
}

// column describe una columna de tabla.
type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow cabecera con fondo de color primario.
func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow fila de detalle; las filas pares llevan fondo claro.
func tableRow(cols []column, values []string, even bool) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cs...)
	if even {
		r.WithStyle(&props.Cell{BackgroundColor: colorLight})
	}
	return r
}

// keyValueRow par etiqueta/valor alineado a la derecha.
func keyValueRow(label, value string, bold bool) core.Row {
	style := fontstyle.Normal
	color := &props.Color{}
	if bold {
		style = fontstyle.Bold
		color = colorPrimary
	}
	return row.New(6).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})),
		col.New(3).Add(text.New(value, props.Text{Style: style, Size: 9, Align: align.Right, Right: 1, Color: color})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
