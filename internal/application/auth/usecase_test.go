package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/pkg/jwt"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"}, logger.Nop())
}

func TestRegisterUser(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.True(t, u.Active)
	assert.Equal(t, []string{entity.RoleUser}, u.Roles)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureUser_CreaYActualiza(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureUser(ctx, "admin", "admin", auth.RolesFor(true))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleUser}, created.Roles)

	updated, err := uc.EnsureUser(ctx, "admin", "nueva", auth.RolesFor(false))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []string{entity.RoleUser}, updated.Roles)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "nueva"})
	assert.NoError(t, err)

	_, err = uc.EnsureUser(ctx, "", "x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
