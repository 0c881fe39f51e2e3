package repository

import (
	"context"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Update sobrescribe nombre, precio y cantidad. Devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity escribe la existencia tal cual, sin comparar con el valor previo.
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	ResetAllQuantities(ctx context.Context) error
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
