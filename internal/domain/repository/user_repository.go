package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
