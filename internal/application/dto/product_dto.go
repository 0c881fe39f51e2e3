package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
// Punteros para distinguir campo ausente de valor cero.
type ProductRequest struct {
	Nombre   string           `json:"nombre" validate:"required"`
	Precio   *decimal.Decimal `json:"precio" validate:"required"`
	Cantidad *int             `json:"cantidad" validate:"required,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Cantidad  int             `json:"cantidad"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductRef producto embebido en ventas y conteos.
type ProductRef struct {
	ID       string           `json:"id"`
	Nombre   string           `json:"nombre,omitempty"`
	Precio   *decimal.Decimal `json:"precio,omitempty"`
	Cantidad *int             `json:"cantidad,omitempty"`
}
