package pdf

import (
	"context"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/pkg/money"
)

var inventoryColumns = []column{
	{"Producto", 4, align.Left},
	{"Precio", 2, align.Right},
	{"Sistema", 2, align.Center},
	{"Físico", 2, align.Center},
	{"Diferencia", 2, align.Center},
}

// RenderInventoryReport genera el reporte de inventario: tabla de productos y una página de resumen.
func (g *MarotoGenerator) RenderInventoryReport(_ context.Context, r ports.InventoryReport) ([]byte, error) {
	m := g.newDocument("Reporte de Inventario", pagesize.A4)

	m.AddRows(titleRow("Reporte de Inventario", "Fecha: "+r.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(inventoryColumns))
	for i, it := range r.Rows {
		physical, diff := "No contado", "N/A"
		if it.PhysicalQty != nil {
			physical = strconv.Itoa(*it.PhysicalQty)
		}
		if it.Difference != nil {
			diff = strconv.Itoa(*it.Difference)
		}
		m.AddRows(tableRow(inventoryColumns, []string{
			it.Name,
			money.Format(it.Price),
			strconv.Itoa(it.SystemQty),
			physical,
			diff,
		}, i%2 == 1))
	}

	summary := []core.Row{
		titleRow("Resumen", ""),
		textRow("Total de productos: " + strconv.Itoa(len(r.Rows))),
		textRow("Productos contados: " + strconv.Itoa(r.Counted)),
		textRow("Productos no contados: " + strconv.Itoa(r.NotCounted)),
	}
	if len(r.Pending) > 0 {
		summary = append(summary, sectionRow("Productos pendientes de conteo"))
		for _, name := range r.Pending {
			summary = append(summary, textRow("• "+name))
		}
	}
	m.AddPages(page.New().Add(summary...))

	return generate(m)
}
