package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una venta.
const (
	SaleStatusCompleted = "completada"
	SaleStatusCancelled = "cancelada"
	SaleStatusPending   = "pendiente"
)

// SaleItem línea de venta. UnitPrice se captura al vender y no cambia aunque cambie el producto.
type SaleItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Sale venta registrada en caja. PDFURL se llena de forma asíncrona tras generar el ticket.
type Sale struct {
	ID           string
	TicketNumber *string // opcional, único si existe
	Items        []SaleItem
	Total        decimal.Decimal
	Date         time.Time
	Notes        string
	Status       string
	PDFURL       *string
}

// ItemsSubtotal suma los subtotales de las líneas.
func (s *Sale) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.Subtotal)
	}
	return sum
}

// Units total de unidades vendidas.
func (s *Sale) Units() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// DisplayNumber número visible en el ticket: numeroTicket si existe, si no el ID.
func (s *Sale) DisplayNumber() string {
	if s.TicketNumber != nil && *s.TicketNumber != "" {
		return *s.TicketNumber
	}
	return s.ID
}
