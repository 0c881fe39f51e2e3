package html_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/html"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSalesSummary_IncluyeProductosYVentas(t *testing.T) {
	r := html.NewRenderer()
	out, err := r.RenderSalesSummary(context.Background(), ports.SalesReport{
		GeneratedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		SalesCount:  1,
		TotalAmount: decimal.NewFromInt(3000),
		ByProduct:   []ports.ProductSalesRow{{Name: "Pan", Quantity: 2, Revenue: decimal.NewFromInt(3000)}},
		Rows: []ports.SalesReportRow{{
			Date: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), Ticket: "T-9", Status: "completada", Total: decimal.NewFromInt(3000),
		}},
	})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "Reporte de Ventas")
	assert.Contains(t, page, "<td>Pan</td>")
	assert.Contains(t, page, "T-9")
	assert.Contains(t, page, "completada")
	assert.Contains(t, page, "Total de ventas: 1")
}

func TestRenderSalesSummary_EscapaNombres(t *testing.T) {
	r := html.NewRenderer()
	out, err := r.RenderSalesSummary(context.Background(), ports.SalesReport{
		GeneratedAt: time.Now(),
		ByProduct:   []ports.ProductSalesRow{{Name: "<script>x</script>", Quantity: 1, Revenue: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>x</script>"))
}
