package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Banner is the plain-text answer of the root route.
const Banner = `Mobile bazar "API"   Here`

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the root banner and the health check.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler that pings s with the given timeout.
func NewHealthHandler(s Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{store: s, timeout: timeout}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString(Banner)
}

// HandleHealth answers 200 when the store pings and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status, storeState := fiber.StatusOK, "connected"
	if err := h.store.Ping(ctx); err != nil {
		status, storeState = fiber.StatusServiceUnavailable, "unavailable"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"store":  storeState,
	})
}
