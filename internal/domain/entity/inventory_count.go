package entity

import "time"

// InventoryCount conteo físico de un producto. Difference = PhysicalQty - existencia en sistema al contar.
type InventoryCount struct {
	ID          string
	ProductID   string
	PhysicalQty int
	Difference  int
	CountedAt   time.Time
	Notes       string
}
