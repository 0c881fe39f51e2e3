package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del autoservicio.
// Quantity es la existencia en sistema; la modifican las ventas y los conteos físicos.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de venta vigente
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStock indica si hay existencia suficiente para vender qty unidades.
func (p *Product) HasStock(qty int) bool {
	return p.Quantity >= qty
}
