package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/services"
)

// parseBody decodes the JSON request body into v regardless of the Content-Type header.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return &services.ValidationError{Fields: map[string]string{"body": "must be a valid JSON object"}}
	}
	return nil
}
