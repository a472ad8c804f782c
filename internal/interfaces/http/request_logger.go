package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/pkg/logger"
)

const (
	// LocalRequestID key en c.Locals con el ID de la petición.
	LocalRequestID = "request_id"
	localError     = "handler_error"
)

// RequestLogger registra una línea por petición (método, ruta, estado, duración)
// y propaga X-Request-ID, generándolo si el cliente no lo envía.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)
		c.Locals(LocalRequestID, rid)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
			if err, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(err)
			}
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http request")
		return nil
	}
}
