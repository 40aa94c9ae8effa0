package logging

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is the fiber.Ctx local the requestid middleware stores ids under.
const RequestIDKey = "requestid"

// Middleware logs one line per request. Errors returned by later handlers are
// passed through untouched so the app error handler still renders them.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusFromError(err)
		}

		ev := Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = Warn()
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok {
			ev = ev.Str("request_id", id)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// StatusFromError returns the HTTP status a handler error will be rendered with.
func StatusFromError(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
