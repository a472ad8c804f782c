package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User representa una cuenta con acceso a la API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	Roles        []string
	CreatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol indicado.
func (u *User) HasRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}
