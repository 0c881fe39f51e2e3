package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/jhoicas/autoservicio-api/internal/domain"
	"github.com/jhoicas/autoservicio-api/internal/domain/repository"
	"github.com/jhoicas/autoservicio-api/pkg/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea un usuario activo y devuelve su token. ErrDuplicate si username o email ya existen.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := usecase.NewUser(ctx, uc.userRepo, in, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return &dto.AuthResponse{
		Message: "Usuario creado exitosamente",
		Token:   token,
		User:    *usecase.ToUserResponse(user),
	}, nil
}

// Login verifica username/password, marca al usuario activo y genera JWT.
// Usuario desconocido y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	if err := uc.userRepo.SetActivity(ctx, user.ID, true, &now); err != nil {
		return nil, err
	}
	user.IsActive = true
	user.LastActive = now
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: "Login exitoso",
		Token:   token,
		User:    *usecase.ToUserResponse(user),
	}, nil
}

// Logout marca inactivo al usuario del token. Si el usuario ya no existe no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	err := uc.userRepo.SetActivity(ctx, userID, false, nil)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
