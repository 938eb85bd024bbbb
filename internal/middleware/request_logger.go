package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/logging"
)

// RequestLogger attaches a per-request logger to the user context and logs each completed request.
// Errors from later handlers are rendered here through the app's ErrorHandler so the
// logged status is the one the client receives. It must run after requestid.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := base.With(
			"method", c.Method(),
			"path", c.Path(),
			"remote_ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		)
		if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			l = l.With("request_id", rid)
		}
		c.SetUserContext(logging.IntoContext(c.UserContext(), l))

		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		dur := time.Since(start)
		status := c.Response().StatusCode()

		switch {
		case status >= fiber.StatusInternalServerError:
			l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds())
		case status >= fiber.StatusBadRequest:
			l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
		default:
			l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", len(c.Response().Body()))
		}
		return nil
	}
}
