// Package html genera el reporte de ventas en HTML que se conserva en el directorio de reportes.
package html

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/jhoicas/autoservicio-api/pkg/money"
)

const salesReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Reporte de Ventas</title>
  <style>
    body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 24px; background: #f5f7fa; color: #1a1f36; }
    .reporte { max-width: 900px; margin: 0 auto; background: #fff; padding: 32px; border-radius: 4px; box-shadow: 0 2px 5px rgba(0,0,0,0.05); }
    .header { text-align: center; margin-bottom: 24px; }
    .header h1 { margin: 0; color: #00467f; }
    .header p { color: #646464; }
    .resumen { background: #ebf0f7; padding: 16px; border-radius: 4px; margin-bottom: 24px; }
    h2 { color: #00467f; font-size: 18px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th { background: #00467f; color: #fff; text-align: left; padding: 8px; }
    td { padding: 8px; border-bottom: 1px solid #e3e8ee; }
    tr:nth-child(even) td { background: #f8fafc; }
    .num { text-align: right; }
  </style>
</head>
<body>
  <div class="reporte">
    <div class="header">
      <h1>Reporte de Ventas</h1>
      <p>Fecha de generación: {{formatDateTime .GeneratedAt}}</p>
      {{- if and .From .To}}
      <p>Período: {{formatDate .From}} - {{formatDate .To}}</p>
      {{- end}}
    </div>

    <div class="resumen">
      <h2>Resumen</h2>
      <p>Total de ventas: {{.SalesCount}}</p>
      <p>Total de ingresos: {{formatMoney .TotalAmount}}</p>
    </div>

    <h2>Ventas por Producto</h2>
    <table class="productos">
      <thead>
        <tr><th>Producto</th><th class="num">Cantidad Vendida</th><th class="num">Ingresos</th></tr>
      </thead>
      <tbody>
        {{- range .ByProduct}}
        <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{formatMoney .Revenue}}</td></tr>
        {{- end}}
      </tbody>
    </table>

    <h2>Detalle de Ventas</h2>
    <table class="ventas">
      <thead>
        <tr><th>Ticket</th><th>Fecha</th><th class="num">Total</th><th>Estado</th></tr>
      </thead>
      <tbody>
        {{- range .Rows}}
        <tr><td>{{.Ticket}}</td><td>{{formatDateTime .Date}}</td><td class="num">{{formatMoney .Total}}</td><td>{{.Status}}</td></tr>
        {{- end}}
      </tbody>
    </table>
  </div>
</body>
</html>
`

var _ ports.SalesSummaryRenderer = (*Renderer)(nil)

// Renderer reporte HTML de ventas con html/template (escapa nombres de producto y notas).
type Renderer struct {
	tpl *template.Template
}

// NewRenderer compila la plantilla.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"formatMoney":    money.Format,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
	}
	return &Renderer{
		tpl: template.Must(template.New("sales_report").Funcs(funcs).Parse(salesReportTemplate)),
	}
}

// RenderSalesSummary ejecuta la plantilla con los datos del reporte.
func (r *Renderer) RenderSalesSummary(_ context.Context, report ports.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("html: ejecutar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
