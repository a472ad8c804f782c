package auth

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/jwt"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cuentas iniciales.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// RegisterUser crea un usuario activo con rol USER. Devuelve ErrUserExists si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{entity.RoleUser},
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// EnsureUser crea la cuenta o, si existe, le reasigna contraseña y roles y la reactiva.
// Lo usan el arranque (cuentas AUTH_BOOTSTRAP_*) y catalogctl create-user.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password string, roles []string) (*dto.UserResponse, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Username:     username,
			PasswordHash: string(hash),
			Active:       true,
			Roles:        slices.Clone(roles),
			CreatedAt:    uc.now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		uc.log.Info().Str("username", username).Strs("roles", roles).Msg("usuario inicial creado")
		return toUserResponse(user), nil
	}

	user.PasswordHash = string(hash)
	user.Roles = slices.Clone(roles)
	user.Active = true
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", username).Strs("roles", roles).Msg("usuario inicial actualizado")
	return toUserResponse(user), nil
}

// RolesFor devuelve los roles de una cuenta inicial: ADMIN implica también USER.
func RolesFor(admin bool) []string {
	if admin {
		return []string{entity.RoleAdmin, entity.RoleUser}
	}
	return []string{entity.RoleUser}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Active:    u.Active,
		Roles:     slices.Clone(u.Roles),
		CreatedAt: u.CreatedAt,
	}
}
