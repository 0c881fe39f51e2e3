package pdf

import (
	"context"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/pkg/money"
)

var salesColumns = []column{
	{"Fecha", 3, align.Left},
	{"Ticket", 2, align.Left},
	{"Productos", 5, align.Left},
	{"Total", 2, align.Right},
}

// RenderSalesReport genera el reporte de ventas: periodo, resumen y tabla de ventas.
func (g *MarotoGenerator) RenderSalesReport(_ context.Context, r ports.SalesReport) ([]byte, error) {
	m := g.newDocument("Reporte de Ventas", pagesize.A4)

	m.AddRows(titleRow("Reporte de Ventas", "Generado: "+r.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(textRow("Período: " + periodLabel(r)))
	m.AddRows(textRow("Tipo: " + nonEmpty(r.Type, "todas")))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("Resumen"))
	m.AddRows(textRow("Total de Ventas: " + money.Format(r.TotalAmount)))
	m.AddRows(textRow("Total de Productos Vendidos: " + strconv.Itoa(r.UnitsSold)))
	m.AddRows(textRow("Promedio por Venta: " + money.Format(r.AverageSale)))

	m.AddRows(sectionRow("Ventas"))
	m.AddRows(tableHeaderRow(salesColumns))
	for i, s := range r.Rows {
		m.AddRows(tableRow(salesColumns, []string{
			s.Date.Format("02/01/2006 15:04"),
			s.Ticket,
			s.Products,
			money.Format(s.Total),
		}, i%2 == 1))
	}

	return generate(m)
}

func periodLabel(r ports.SalesReport) string {
	if r.From == nil || r.To == nil {
		return "todas las fechas"
	}
	return r.From.Format("2006-01-02") + " - " + r.To.Format("2006-01-02")
}
