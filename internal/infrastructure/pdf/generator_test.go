package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPDF(t *testing.T, data []byte) {
	t.Helper()
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderTicket(t *testing.T) {
	g := pdf.NewMarotoGenerator("Autoservicio")
	data, err := g.RenderTicket(context.Background(), ports.TicketView{
		Number: "T-0001",
		Date:   time.Date(2024, 5, 3, 10, 15, 0, 0, time.UTC),
		Lines: []ports.TicketLine{
			{Name: "Pan", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), Subtotal: decimal.NewFromInt(3000)},
			{Name: "Leche", Quantity: 1, UnitPrice: decimal.NewFromInt(4200), Subtotal: decimal.NewFromInt(4200)},
		},
		Total: decimal.NewFromInt(7200),
		Notes: "Pago en efectivo",
	})
	require.NoError(t, err)
	isPDF(t, data)
}

func TestRenderInventoryReport_ConYSinConteo(t *testing.T) {
	g := pdf.NewMarotoGenerator("Autoservicio")
	physical, diff := 8, -2
	data, err := g.RenderInventoryReport(context.Background(), ports.InventoryReport{
		GeneratedAt: time.Now(),
		Rows: []ports.InventoryRow{
			{Name: "Arroz", Price: decimal.NewFromInt(3000), SystemQty: 10, PhysicalQty: &physical, Difference: &diff},
			{Name: "Azúcar", Price: decimal.NewFromInt(2800), SystemQty: 4},
		},
		Counted:    1,
		NotCounted: 1,
		Pending:    []string{"Azúcar"},
	})
	require.NoError(t, err)
	isPDF(t, data)
}

func TestRenderSalesReport_SinVentas(t *testing.T) {
	g := pdf.NewMarotoGenerator("Autoservicio")
	data, err := g.RenderSalesReport(context.Background(), ports.SalesReport{
		GeneratedAt: time.Now(),
		Type:        "daily",
		TotalAmount: decimal.Zero,
		AverageSale: decimal.Zero,
	})
	require.NoError(t, err)
	isPDF(t, data)
}
