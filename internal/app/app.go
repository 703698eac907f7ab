package app

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/fixora/backend/core/email/templates"
	"github.com/fixora/backend/core/logger"
	"github.com/fixora/backend/core/server"
	"github.com/fixora/backend/integration/database/mongo"
	"github.com/fixora/backend/internal/httpserver"
	"github.com/fixora/backend/internal/mailer"
	"github.com/fixora/backend/internal/transport"
	"github.com/fixora/backend/middleware"
)

const serviceName = "fixora"

// App wires the long-lived collaborators built once per process.
type App struct {
	Config    Config
	Log       *slog.Logger
	Transport transport.Result
	Renderer  *templates.Renderer
	Mailer    *mailer.Mailer
	Tracker   *mongo.Tracker
	Registry  *prometheus.Registry

	db atomic.Pointer[driver.Client]
}

// NewLogger builds the process logger for cfg.Env, tagging records with the
// request id when one is on the context.
func NewLogger(cfg Config, out io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(serviceName, cfg.Env),
		logger.WithOutput(out),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelString(cfg.LogLevel))
	}
	return logger.New(opts...)
}

// New builds the transport (starting its background verification), the renderer and
// the mailer. It does not connect to the database; Serve does.
func New(ctx context.Context, cfg Config, log *slog.Logger) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	res := transport.Build(ctx, cfg.Transport, transport.WithLogger(log))
	renderer := templates.NewRenderer(cfg.Templates)

	return &App{
		Config:    cfg,
		Log:       log,
		Transport: res,
		Renderer:  renderer,
		Mailer: mailer.New(res.Transport, renderer, cfg.Mailer,
			mailer.WithLogger(log),
			mailer.WithMetrics(mailer.NewMetrics(reg)),
		),
		Tracker:  mongo.NewTracker(),
		Registry: reg,
	}
}

// Handler returns the HTTP surface.
func (a *App) Handler() *gin.Engine {
	return httpserver.New(httpserver.Deps{
		Logger:   a.Log,
		Health:   a.Config.Health,
		Database: a.Tracker,
		Checks:   []func(context.Context) error{a.pingDatabase},
		Gatherer: a.Registry,
	})
}

func (a *App) pingDatabase(ctx context.Context) error {
	return mongo.Healthcheck(a.db.Load())(ctx)
}

// GinMode is the gin mode for env: debug output only in development.
func GinMode(env string) string {
	if env == "development" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// Serve runs the HTTP server and the database connection until ctx is done.
// A database that cannot be reached is logged and reported by the health
// endpoint; it does not stop the server.
func (a *App) Serve(ctx context.Context) error {
	srv, err := server.NewFromConfig(a.Config.Server, server.WithLogger(a.Log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, a.Handler())
	})
	g.Go(func() error {
		return a.runDatabase(ctx)
	})
	return g.Wait()
}

func (a *App) runDatabase(ctx context.Context) error {
	log := a.Log.With(logger.Component("database"))
	if !a.Config.Mongo.Enabled() {
		log.WarnContext(ctx, "MONGODB_URL not set, database will be reported as disconnected")
		return nil
	}

	client, err := mongo.New(ctx, a.Config.Mongo, a.Tracker)
	if err != nil {
		if ctx.Err() == nil {
			log.ErrorContext(ctx, "failed to connect to database", logger.Error(err))
		}
		return nil
	}
	a.db.Store(client)
	log.InfoContext(ctx, "connected to database", slog.String("database", a.Config.Mongo.Database))

	<-ctx.Done()

	a.db.Store(nil)
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := mongo.Close(closeCtx, client, a.Tracker); err != nil {
		log.ErrorContext(closeCtx, "failed to close database connection", logger.Error(err))
	}
	return nil
}
