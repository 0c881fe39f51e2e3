package repository

import (
	"context"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
)

// SaleFilter rango opcional de fechas (inclusivo) para listar ventas.
type SaleFilter struct {
	From *time.Time
	To   *time.Time
}

// SaleRepository define el puerto de persistencia para Sale. Una venta es un documento:
// cabecera y líneas se escriben juntas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List ordena por fecha descendente.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	SetPDFURL(ctx context.Context, id, url string) error
}
