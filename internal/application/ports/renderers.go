package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TicketLine línea del ticket con el nombre del producto ya resuelto.
type TicketLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// TicketView datos de un ticket de venta.
type TicketView struct {
	Number string
	Date   time.Time
	Lines  []TicketLine
	Total  decimal.Decimal
	Notes  string
}

// TicketRenderer genera el PDF de un ticket.
type TicketRenderer interface {
	RenderTicket(ctx context.Context, t TicketView) ([]byte, error)
}

// InventoryRow fila del reporte de inventario. PhysicalQty y Difference son nil si no hay conteo.
type InventoryRow struct {
	Name        string
	Price       decimal.Decimal
	SystemQty   int
	PhysicalQty *int
	Difference  *int
}

// InventoryReport reporte de producto contra último conteo.
type InventoryReport struct {
	GeneratedAt time.Time
	Rows        []InventoryRow
	Counted     int
	NotCounted  int
	Pending     []string // productos sin conteo
}

// InventoryReportRenderer genera el PDF de inventario.
type InventoryReportRenderer interface {
	RenderInventoryReport(ctx context.Context, r InventoryReport) ([]byte, error)
}

// SalesReportRow fila del detalle de ventas.
type SalesReportRow struct {
	Date     time.Time
	Ticket   string
	Products string // "Pan (2), Leche (1)"
	Status   string
	Total    decimal.Decimal
}

// ProductSalesRow acumulado por producto.
type ProductSalesRow struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// SalesReport datos comunes de los reportes de ventas (PDF y HTML).
type SalesReport struct {
	GeneratedAt time.Time
	From, To    *time.Time
	Type        string
	SalesCount  int
	TotalAmount decimal.Decimal
	UnitsSold   int
	AverageSale decimal.Decimal
	ByProduct   []ProductSalesRow
	Rows        []SalesReportRow
}

// SalesReportRenderer genera el PDF de ventas (resumen + tabla).
type SalesReportRenderer interface {
	RenderSalesReport(ctx context.Context, r SalesReport) ([]byte, error)
}

// SalesSummaryRenderer genera el reporte HTML de ventas por producto.
type SalesSummaryRenderer interface {
	RenderSalesSummary(ctx context.Context, r SalesReport) ([]byte, error)
}
