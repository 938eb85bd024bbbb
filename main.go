package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"mobilebazar/internal/config"
	"mobilebazar/internal/logging"
	"mobilebazar/internal/metrics"
	"mobilebazar/internal/server"
	"mobilebazar/internal/services"
	"mobilebazar/internal/store"
	"mobilebazar/internal/store/memstore"
	"mobilebazar/internal/store/mongostore"
	"mobilebazar/internal/store/sqlstore"
	"mobilebazar/pkg/kafkabus"
	"mobilebazar/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file loaded, using process environment", "error", err)
	}
	cfg, err := config.Load(viper.New())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Document store ---
	db := store.NewLazy(openStore(cfg))
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	_, err = db.Connect(connectCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to %s store: %w", cfg.StoreDriver, err)
	}
	logger.Info("document store connected", "driver", cfg.StoreDriver, "database", cfg.DBName)

	var reg *metrics.Registry
	var s store.Store = db
	if cfg.MetricsEnabled {
		reg = metrics.NewRegistry()
		s = store.Observe(db, reg)
	}

	// --- Events ---
	pub, closePub := newPublisher(cfg, logger)

	// --- HTTP server ---
	app := server.New(cfg, server.Deps{
		Logger:    logger,
		Store:     s,
		Publisher: pub,
		Metrics:   reg,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		listenErr <- app.Listen(cfg.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	case err := <-listenErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("error during fiber shutdown", "error", err)
	}
	if err := closePub(); err != nil {
		logger.Error("error closing event publisher", "error", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := db.Close(closeCtx); err != nil {
		logger.Error("error closing document store", "error", err)
	}

	if runErr == nil {
		logger.Info("server gracefully stopped")
	}
	return runErr
}

// openStore returns the connector for the configured backend.
func openStore(cfg config.Config) store.OpenFunc {
	return func(ctx context.Context) (store.Store, error) {
		switch cfg.StoreDriver {
		case config.DriverMongo:
			s, err := mongostore.Open(ctx, mongostore.Config{
				URI:            cfg.MongoURI,
				Database:       cfg.DBName,
				ConnectTimeout: cfg.ConnectTimeout,
			})
			if err != nil {
				return nil, err
			}
			return s, nil
		case config.DriverPostgres, config.DriverSQLite:
			s, err := sqlstore.Open(ctx, sqlstore.Config{
				Driver:         cfg.StoreDriver,
				DSN:            cfg.DatabaseDSN,
				ConnectTimeout: cfg.ConnectTimeout,
			})
			if err != nil {
				return nil, err
			}
			return s, nil
		case config.DriverMemory:
			return memstore.New(), nil
		default:
			return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
		}
	}
}

// newPublisher builds the configured event publisher. A broker that cannot be reached
// leaves events disabled; the API keeps serving.
func newPublisher(cfg config.Config, logger *slog.Logger) (services.EventPublisher, func() error) {
	noop := func() error { return nil }

	switch cfg.EventsDriver {
	case config.EventsRabbitMQ:
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", "error", err)
			return nil, noop
		}
		if cfg.EventsConsume {
			if err := client.ConsumeEvents(rabbitmq.LogDeliveries(logger)); err != nil {
				logger.Warn("failed to start event consumer", "error", err)
			}
		}
		return client, client.Close
	case config.EventsKafka:
		w, err := kafkabus.NewWriter(kafkabus.Config{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic, Logger: logger})
		if err != nil {
			logger.Warn("kafka writer not created, events disabled", "error", err)
			return nil, noop
		}
		return w, w.Close
	default:
		return nil, noop
	}
}
