package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/pkg/logger"
)

// RequestLogger emits one structured event per completed request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"ip":          c.IP(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.Info("http_request", fields)

		return err
	}
}
