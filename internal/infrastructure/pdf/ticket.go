package pdf

import (
	"context"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/pkg/money"
)

//	┌───────────────────────────────────────────┐
//	│           Ticket de Venta                 │
//	│     Número: ...   Fecha: ...              │
//	│  Producto | Cant. | Precio Unit. | Subt.  │
//	│                          Total: $...      │
//	│  Observaciones                            │
//	│        ¡Gracias por su compra!            │
//	└───────────────────────────────────────────┘
var ticketColumns = []column{
	{"Producto", 5, align.Left},
	{"Cant.", 2, align.Center},
	{"Precio Unit.", 2, align.Right},
	{"Subtotal", 3, align.Right},
}

// RenderTicket genera el PDF del ticket de una venta.
func (g *MarotoGenerator) RenderTicket(_ context.Context, t ports.TicketView) ([]byte, error) {
	m := g.newDocument("Ticket de Venta", pagesize.A5)

	m.AddRows(titleRow("Ticket de Venta", "Número: "+t.Number))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		"Fecha: "+t.Date.Format("02/01/2006 15:04:05"),
		props.Text{Size: 9, Align: align.Center, Color: colorGray},
	))))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(ticketColumns))
	for i, l := range t.Lines {
		m.AddRows(tableRow(ticketColumns, []string{
			l.Name,
			strconv.Itoa(l.Quantity),
			money.Format(l.UnitPrice),
			money.Format(l.Subtotal),
		}, i%2 == 1))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(keyValueRow("Total:", money.Format(t.Total), true))

	if t.Notes != "" {
		m.AddRows(row.New(4))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+t.Notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	m.AddRows(row.New(6))
	m.AddRows(row.New(8).Add(col.New(12).Add(text.New("¡Gracias por su compra!", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary,
	}))))

	return generate(m)
}
