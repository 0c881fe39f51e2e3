package repository

import (
	"context"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
)

// InventoryCountRepository define el puerto de persistencia para conteos físicos.
type InventoryCountRepository interface {
	Create(ctx context.Context, count *entity.InventoryCount) error
	GetByID(ctx context.Context, id string) (*entity.InventoryCount, error)
	// List ordena por fecha de conteo descendente.
	List(ctx context.Context) ([]*entity.InventoryCount, error)
	Update(ctx context.Context, count *entity.InventoryCount) error
	DeleteAll(ctx context.Context) error
}
