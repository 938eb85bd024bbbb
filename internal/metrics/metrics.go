package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mobilebazar/internal/store"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	StoreOps     *prometheus.CounterVec
	StoreLatency *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bazar_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bazar_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	storeOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bazar_store_operations_total",
		Help: "Document store calls by collection, operation and result.",
	}, []string{"collection", "op", "result"})
	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bazar_store_operation_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "op"})

	r.MustRegister(
		httpRequests, httpDuration, storeOps, storeLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:          r,
		HTTPRequests: httpRequests,
		HTTPDuration: httpDuration,
		StoreOps:     storeOps,
		StoreLatency: storeLatency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveStoreOp implements store.Observer.
func (r *Registry) ObserveStoreOp(collection, op string, took time.Duration, err error) {
	r.StoreOps.WithLabelValues(collection, op, storeResult(err)).Inc()
	r.StoreLatency.WithLabelValues(collection, op).Observe(took.Seconds())
}

func storeResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Middleware records one sample per request, labelled by the matched route pattern.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				status = ferr.Code
			}
		}

		route := c.Route().Path
		r.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		r.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
