package dto

import "time"

// RegisterRequest entrada para registro y para alta de usuarios (password en texto, se hashea en use case).
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateUserRequest entrada para actualizar datos de un usuario (no cambia password).
type UpdateUserRequest struct {
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Nombre     string    `json:"nombre"`
	Apellido   string    `json:"apellido"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"isActive"`
	LastActive time.Time `json:"lastActive"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse salida de registro y login con token JWT.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
