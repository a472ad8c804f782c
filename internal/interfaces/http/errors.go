package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// writeError traduce un error de dominio a su respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	if status == fiber.StatusUnauthorized {
		msg = "credenciales inválidas"
	}
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUserExists):
		return fiber.StatusConflict, "USER_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "IN_USE"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// ErrorHandler manejador de errores de Fiber: rutas inexistentes, panics recuperados, etc.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + itoa(int64(fe.Code)), Message: fe.Message})
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
