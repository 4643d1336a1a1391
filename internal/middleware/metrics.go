package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests that reached no route.
const unmatchedRoute = "unmatched"

type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
}

func NewMetricsBuilder(reg prometheus.Registerer) *MetricsBuilder {
	factory := promauto.With(reg)

	summaryVec := factory.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status_code"},
	)

	counterVec := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	return &MetricsBuilder{
		summaryVec: summaryVec,
		counterVec: counterVec,
	}
}

func (m *MetricsBuilder) Build() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		method := c.Method()
		path := c.Route().Path
		if path == "" || (path == "/" && c.Path() != "/") {
			path = unmatchedRoute
		}

		// Errors are rendered by the app's ErrorHandler after this returns.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fErr *fiber.Error
			if errors.As(err, &fErr) {
				status = fErr.Code
			}
		}
		statusCode := strconv.Itoa(status)

		m.summaryVec.WithLabelValues(method, path, statusCode).Observe(duration)
		m.counterVec.WithLabelValues(method, path, statusCode).Inc()

		return err
	}
}
