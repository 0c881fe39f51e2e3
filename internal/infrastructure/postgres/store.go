package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Store agrupa los repositorios sobre un mismo pool.
type Store struct {
	Products *ProductRepo
	Users    *UserRepo
	Sales    *SaleRepo
	Counts   *InventoryCountRepo
}

// NewStore construye todos los repositorios PostgreSQL.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Products: NewProductRepository(pool),
		Users:    NewUserRepository(pool),
		Sales:    NewSaleRepository(pool),
		Counts:   NewInventoryCountRepository(pool),
	}
}
