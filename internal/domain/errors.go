package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrUserExists   = errors.New("el usuario ya existe")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInUse        = errors.New("recurso referenciado por otros registros")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
