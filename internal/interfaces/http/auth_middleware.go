package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

// Locals keys para los datos del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRoles    = "roles"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, Username y Roles a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// RequireRole deja pasar si el token tiene alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → el token no trae roles.
//   - 403 FORBIDDEN    → ninguno de sus roles está permitido.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene roles"})
		}
		for _, role := range roles {
			if slices.Contains(allowed, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRoles devuelve los roles del contexto.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}
