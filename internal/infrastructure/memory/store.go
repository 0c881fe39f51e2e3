// Package memory implementa los puertos de persistencia en memoria del proceso.
// Cada operación es atómica por documento, igual que el almacén documental real;
// las secuencias leer-modificar-escribir de los casos de uso no se serializan.
package memory

// Store agrupa los repositorios en memoria. Usar NewStore.
type Store struct {
	Products *ProductRepo
	Users    *UserRepo
	Sales    *SaleRepo
	Counts   *InventoryCountRepo
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		Products: &ProductRepo{items: map[string]productDoc{}},
		Users:    &UserRepo{items: map[string]userDoc{}},
		Sales:    &SaleRepo{items: map[string]saleDoc{}},
		Counts:   &InventoryCountRepo{items: map[string]countDoc{}},
	}
}
