package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa su ID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, active, roles, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Active, user.Roles, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, active, roles, created_at
		FROM users WHERE username = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.Roles, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// Update actualiza contraseña, estado y roles.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET password_hash = $2, active = $3, roles = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, user.ID, user.PasswordHash, user.Active, user.Roles)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
