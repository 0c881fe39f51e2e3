package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea solicitada. Un precio enviado por el cliente se ignora.
type SaleLineRequest struct {
	Producto string `json:"producto"`
	Cantidad *int   `json:"cantidad"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Productos     []SaleLineRequest `json:"productos"`
	Total         *decimal.Decimal  `json:"total"`
	Observaciones string            `json:"observaciones"`
	NumeroTicket  *string           `json:"numeroTicket"`
}

// SaleLineResponse línea persistida con el producto resuelto.
type SaleLineResponse struct {
	Producto       ProductRef      `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	NumeroTicket  *string            `json:"numeroTicket"`
	Productos     []SaleLineResponse `json:"productos"`
	Total         decimal.Decimal    `json:"total"`
	Fecha         time.Time          `json:"fecha"`
	Observaciones string             `json:"observaciones"`
	Estado        string             `json:"estado"`
	PDFURL        *string            `json:"pdfUrl"`
}

// TicketSummary elemento del listado de tickets.
type TicketSummary struct {
	ID           string          `json:"id"`
	NumeroTicket *string         `json:"numeroTicket"`
	Total        decimal.Decimal `json:"total"`
	Fecha        time.Time       `json:"fecha"`
}
