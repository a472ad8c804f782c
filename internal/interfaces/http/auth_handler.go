package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
