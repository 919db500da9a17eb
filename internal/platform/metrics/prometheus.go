// Package metrics exposes Prometheus instrumentation for the mock
// registry server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	ridsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kzr_identifiers_generated_total",
			Help: "Total number of patient identifiers issued",
		},
		[]string{"kind"},
	)

	ridGeneratorRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kzr_identifier_generator_retries_total",
			Help: "Total number of rejected identifier candidates",
		},
	)

	notificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kzr_notifications_created_total",
			Help: "Total number of notifications registered",
		},
	)

	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kzr_orders_created_total",
			Help: "Total number of lab and imaging orders created",
		},
		[]string{"modality"},
	)
)

// Handler serves the /metrics scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// Middleware records request counts, latency and in-flight gauge per route.
// The echo route template keeps label cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}

			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordIdentifierGenerated counts an issued identifier, kind is "rid" or "drid".
func RecordIdentifierGenerated(kind string) {
	ridsGenerated.WithLabelValues(kind).Inc()
}

// RecordGeneratorRetry counts a rejected identifier candidate.
func RecordGeneratorRetry() {
	ridGeneratorRetries.Inc()
}

// RecordNotificationCreated counts a registered notification.
func RecordNotificationCreated() {
	notificationsCreated.Inc()
}

// RecordOrderCreated counts a created order, modality is "lab" or "imaging".
func RecordOrderCreated(modality string) {
	ordersCreated.WithLabelValues(modality).Inc()
}
