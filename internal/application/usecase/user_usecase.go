package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (rutas protegidas por JWT).
type UserUseCase struct {
	repo       repository.UserRepository
	inactivity time.Duration
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso. inactivity es el tiempo sin actividad tras el cual
// un usuario se marca inactivo al listar.
func NewUserUseCase(repo repository.UserRepository, inactivity time.Duration) *UserUseCase {
	return &UserUseCase{repo: repo, inactivity: inactivity, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *UserUseCase) WithClock(now func() time.Time) *UserUseCase {
	uc.now = now
	return uc
}

// ValidateRegistration revisa los campos obligatorios de alta de usuario.
func ValidateRegistration(in dto.RegisterRequest) error {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || strings.TrimSpace(in.Nombre) == "" ||
		strings.TrimSpace(in.Apellido) == "" || strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: username, password, nombre, apellido y email son requeridos", domain.ErrInvalidInput)
	}
	_, err := normalizeEmail(in.Email)
	return err
}

// normalizeEmail acepta solo la dirección desnuda ("ana@x.co"). Formas con nombre
// ("Ana <ana@x.co>") se rechazan para que la unicidad compare buzones.
func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return addr.Address, nil
}

// NewUser valida, revisa duplicados y hashea la contraseña. No persiste.
func NewUser(ctx context.Context, repo repository.UserRepository, in dto.RegisterRequest, now time.Time) (*entity.User, error) {
	if err := ValidateRegistration(in); err != nil {
		return nil, err
	}
	existing, err := repo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario ya existe", domain.ErrDuplicate)
	}
	existing, err = repo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrDuplicate)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.Nombre),
		LastName:     strings.TrimSpace(in.Apellido),
		Email:        strings.TrimSpace(in.Email),
		IsActive:     true,
		LastActive:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// List devuelve los usuarios sin contraseña. Antes de responder marca inactivos
// a los que superaron el tiempo de inactividad.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		if u.IsActive && u.IdleSince(now, uc.inactivity) {
			if err := uc.repo.SetActivity(ctx, u.ID, false, nil); err != nil {
				return nil, err
			}
			u.IsActive = false
			log.Info().Str("user_id", u.ID).Msg("usuario marcado inactivo por inactividad")
		}
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario sin emitir token.
func (uc *UserUseCase) Create(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := NewUser(ctx, uc.repo, in, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Update actualiza nombre, apellido, email y username. Campos vacíos se conservan.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(in.Nombre); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.Apellido); v != "" {
		user.LastName = v
	}
	if strings.TrimSpace(in.Email) != "" {
		email, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse mapea la entidad a la respuesta pública (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Nombre:     u.FirstName,
		Apellido:   u.LastName,
		Email:      u.Email,
		IsActive:   u.IsActive,
		LastActive: u.LastActive,
	}
}
