package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/logging"
	"mobilebazar/internal/services"
	"mobilebazar/internal/store"
)

// ErrorHandler renders every error returned by a route as a JSON envelope and logs it once.
func ErrorHandler(base *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, body := classify(err)
		body["request_id"] = c.GetRespHeader(fiber.HeaderXRequestID)

		l := logging.FromContextOr(c.UserContext(), base)
		if code >= fiber.StatusInternalServerError {
			l.Error("request failed", "status", code, "error", err)
		} else {
			l.Warn("request rejected", "status", code, "error", err)
		}

		return c.Status(code).JSON(body)
	}
}

func classify(err error) (int, fiber.Map) {
	var verr *services.ValidationError
	var ferr *fiber.Error

	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
			"errors":  verr.Fields,
		}
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		}
	case errors.Is(err, store.ErrInvalidID):
		return fiber.StatusBadRequest, fiber.Map{
			"message": "Invalid id",
			"error":   err.Error(),
		}
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound, fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		}
	case errors.As(err, &ferr):
		return ferr.Code, fiber.Map{
			"message": ferr.Message,
		}
	default:
		return fiber.StatusInternalServerError, fiber.Map{
			"message": "Internal server error",
			"error":   err.Error(),
		}
	}
}
