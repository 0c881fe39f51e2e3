package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSales acumulado de un producto en el resumen de ventas.
type ProductSales struct {
	Cantidad int             `json:"cantidad"`
	Ingresos decimal.Decimal `json:"ingresos"`
}

// SalesSummaryResponse salida de GET /sales/report.
type SalesSummaryResponse struct {
	TotalVentas       int                     `json:"totalVentas"`
	VentasPorProducto map[string]ProductSales `json:"ventasPorProducto"`
	TotalIngresos     decimal.Decimal         `json:"totalIngresos"`
	ReporteURL        string                  `json:"reporteUrl"`
}

// SalesGroup ventas agrupadas por periodo. Productos es el total de unidades.
type SalesGroup struct {
	Fecha     string          `json:"fecha"`
	Ventas    []SaleResponse  `json:"ventas"`
	Total     decimal.Decimal `json:"total"`
	Productos int             `json:"productos"`
}

// SalesReportQuery filtros de los reportes de ventas. Fechas nil no filtran.
type SalesReportQuery struct {
	From *time.Time
	To   *time.Time
	Type string
}

// GroupedSales resultado de GET /reports/sales. Grouped=false cuando el tipo no es
// daily/weekly/monthly: entonces se responde la lista plana Ventas.
type GroupedSales struct {
	Grouped bool
	Grupos  []SalesGroup
	Ventas  []SaleResponse
}

// FileResponse archivo generado listo para enviar como adjunto.
type FileResponse struct {
	Name        string
	ContentType string
	Data        []byte
}
