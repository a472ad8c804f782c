package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio de usuarios sobre el almacén.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Username]; ok {
		return domain.ErrUserExists
	}
	u.ID = r.s.nextID(usersTable)
	r.s.users[u.Username] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[u.Username]
	if !ok || stored.ID != u.ID {
		return fmt.Errorf("update user %q: %w", u.Username, domain.ErrUserNotFound)
	}
	r.s.users[u.Username] = cloneUser(u)
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}
