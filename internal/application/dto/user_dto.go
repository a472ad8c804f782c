package dto

import "time"

// RegisterRequest entrada para registro público; el usuario nace con rol USER.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Active    bool      `json:"active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
