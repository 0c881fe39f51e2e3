package sales

import (
	"context"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
)

// StockDecrementer descuenta existencia del catálogo y devuelve el producto leído antes de descontar.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, productID string, qty int) (*entity.Product, error)
}

// TicketScheduler encola la generación del ticket de una venta ya persistida.
// Submit no bloquea; false indica que el trabajo se descartó.
type TicketScheduler interface {
	Submit(saleID string) bool
}

// Metrics contadores de la venta.
type Metrics interface {
	SaleCreated()
	SaleRejected(err error)
}
