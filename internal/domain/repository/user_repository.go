package repository

import (
	"context"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) si no hay coincidencia; username y email duplicados
// se reportan como domain.ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetActivity marca activo/inactivo; lastActive nil conserva el valor actual.
	SetActivity(ctx context.Context, id string, active bool, lastActive *time.Time) error
	Delete(ctx context.Context, id string) error
}
