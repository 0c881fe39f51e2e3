package entity

import "time"

// User representa un usuario del personal (cajero o administrador).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	IsActive     bool
	LastActive   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdleSince indica si el usuario lleva más de d sin actividad respecto a now.
func (u *User) IdleSince(now time.Time, d time.Duration) bool {
	return now.Sub(u.LastActive) > d
}
