package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetricsBuilder(reg)

	app := fiber.New()
	app.Use(metrics.Build())
	app.Get("/api/comparison/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	for _, target := range []string{"/api/comparison/1", "/api/comparison/2", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.counterVec.WithLabelValues("GET", "/api/comparison/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.counterVec.WithLabelValues("GET", "/boom", "503")))
}

func TestMetricsBuilder_UnmatchedPathsShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetricsBuilder(reg)

	app := fiber.New()
	app.Use(metrics.Build())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for _, target := range []string{"/nope/1", "/nope/2", "/wp-login.php"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.counterVec.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.counterVec))
}
