package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"mobilebazar/internal/config"
	"mobilebazar/internal/handlers"
	"mobilebazar/internal/metrics"
	"mobilebazar/internal/middleware"
	"mobilebazar/internal/repositories"
	"mobilebazar/internal/services"
	"mobilebazar/internal/store"
)

// Deps are the collaborators the HTTP server is built from.
type Deps struct {
	Logger *slog.Logger
	Store  store.Store
	// Publisher may be nil, which disables events.
	Publisher services.EventPublisher
	// Metrics may be nil, which disables instrumentation and /metrics.
	Metrics *metrics.Registry
}

// New assembles the fiber app: middleware first, then every route.
func New(cfg config.Config, d Deps) *fiber.App {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "Mobile Bazar API",
		ErrorHandler:          handlers.ErrorHandler(logger),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
	}
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		}))
	}

	// --- Repositories, services, handlers ---
	productService := services.NewProductService(repositories.NewStoreProductRepository(d.Store), d.Publisher)
	orderService := services.NewOrderService(repositories.NewStoreOrderRepository(d.Store), d.Publisher)
	reviewService := services.NewReviewService(repositories.NewStoreReviewRepository(d.Store), d.Publisher)
	userService := services.NewUserService(repositories.NewStoreUserRepository(d.Store), d.Publisher)

	handlers.NewHealthHandler(d.Store, cfg.ConnectTimeout).RegisterRoutes(app)
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app)

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	return app
}
