package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fixora/backend/internal/health"
	"github.com/fixora/backend/middleware"
)

// Deps are the collaborators the HTTP surface reads from.
type Deps struct {
	Logger   *slog.Logger
	Health   health.Config
	Database health.StateReader
	Checks   []func(context.Context) error

	// Gatherer backs /metrics; nil falls back to the default registry.
	Gatherer prometheus.Gatherer
}

// New builds the gin engine serving the health and metrics endpoints.
func New(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	security := middleware.APISecurity
	security.IsDevelopment = strings.EqualFold(d.Health.Environment, "development")

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.SecurityHeadersWithConfig(security),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: log,
			Skip: func(c *gin.Context) bool {
				return c.Request.URL.Path == "/metrics"
			},
		}),
		middleware.Recovery(log),
	)

	health.Register(r, d.Database, d.Health, log, d.Checks...)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return r
}
