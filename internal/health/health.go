package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixora/backend/core/logger"
)

// Values reported in a Snapshot.
const (
	StatusOK       = "OK"
	StatusDegraded = "degraded"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

var processStart = time.Now()

// StateReader exposes whether the database connection is in its ready state.
// *mongo.Tracker satisfies it.
type StateReader interface {
	Ready() bool
}

// Config holds the static fields of the report.
type Config struct {
	Environment string `env:"NODE_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
}

// Snapshot is the body of GET /api/health.
type Snapshot struct {
	Status      string  `json:"status"`
	Uptime      float64 `json:"uptime"`
	Timestamp   int64   `json:"timestamp"`
	Database    string  `json:"database"`
	Environment string  `json:"environment"`
	Version     string  `json:"version"`
}

type reporter struct {
	db    StateReader
	cfg   Config
	start time.Time
	now   func() time.Time
}

// Option customizes the health handler.
type Option func(*reporter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithStartTime overrides the process start time used for uptime.
func WithStartTime(t time.Time) Option {
	return func(r *reporter) {
		r.start = t
	}
}

func newReporter(db StateReader, cfg Config, opts ...Option) *reporter {
	r := &reporter{db: db, cfg: cfg, start: processStart, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.Environment == "" {
		r.cfg.Environment = "development"
	}
	return r
}

func (r *reporter) snapshot() (Snapshot, int) {
	now := r.now()
	s := Snapshot{
		Status:      StatusOK,
		Uptime:      max(now.Sub(r.start).Seconds(), 0),
		Timestamp:   now.UnixMilli(),
		Database:    DatabaseConnected,
		Environment: r.cfg.Environment,
		Version:     r.cfg.Version,
	}
	if r.db == nil || !r.db.Ready() {
		s.Status = StatusDegraded
		s.Database = DatabaseDisconnected
		return s, http.StatusServiceUnavailable
	}
	return s, http.StatusOK
}

// Handler reports uptime and database connectivity. It answers 200 when the
// database is ready and 503 otherwise. It only reads state.
//
// Example:
//
//	tracker := mongo.NewTracker()
//	r.GET("/api/health", health.Handler(tracker, health.Config{
//		Environment: "production",
//		Version:     "1.0.0",
//	}))
func Handler(db StateReader, cfg Config, opts ...Option) gin.HandlerFunc {
	r := newReporter(db, cfg, opts...)
	return func(c *gin.Context) {
		s, code := r.snapshot()
		c.JSON(code, s)
	}
}

// Liveness indicates the process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	r.GET("/api/health/live", health.Liveness)
func Liveness(c *gin.Context) {
	c.String(http.StatusOK, "ALIVE")
}

// NoContent returns 204 without a body, for high-frequency pings.
//
// Example:
//
//	r.GET("/api/health/ping", health.NoContent)
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Readiness verifies every dependency check passes.
// Returns "READY" when all pass and 503 "NOT READY" on the first failure.
//
// Example:
//
//	r.GET("/api/health/ready", health.Readiness(
//		log,
//		mongo.Healthcheck(client),
//	))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				c.String(http.StatusServiceUnavailable, "NOT READY")
				return
			}
		}
		c.String(http.StatusOK, "READY")
	}
}

// Register mounts /api/health and its live, ready and ping endpoints on r.
func Register(r gin.IRouter, db StateReader, cfg Config, log *slog.Logger, checks ...func(context.Context) error) {
	g := r.Group("/api/health")
	g.GET("", Handler(db, cfg))
	g.GET("/live", Liveness)
	g.GET("/ping", NoContent)
	g.GET("/ready", Readiness(log, checks...))
}
