package dto

import "time"

// InventoryCountRequest entrada para registrar un conteo físico.
type InventoryCountRequest struct {
	Producto         string `json:"producto" validate:"required"`
	ExistenciaFisica *int   `json:"existenciaFisica" validate:"required,min=0"`
	Observaciones    string `json:"observaciones"`
}

// UpdateInventoryCountRequest entrada para corregir un conteo. Observaciones vacías conservan las anteriores.
type UpdateInventoryCountRequest struct {
	ExistenciaFisica *int   `json:"existenciaFisica" validate:"required,min=0"`
	Observaciones    string `json:"observaciones"`
}

// InventoryCountResponse salida de un conteo con el producto resuelto.
type InventoryCountResponse struct {
	ID               string     `json:"id"`
	Producto         ProductRef `json:"producto"`
	ExistenciaFisica int        `json:"existenciaFisica"`
	Diferencia       int        `json:"diferencia"`
	FechaConteo      time.Time  `json:"fechaConteo"`
	Observaciones    string     `json:"observaciones"`
}
