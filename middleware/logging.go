package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixora/backend/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(c *gin.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging logs one line per request with the default configuration.
func Logging() gin.HandlerFunc {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger logs one line per request to log.
func LoggingWithLogger(log *slog.Logger) gin.HandlerFunc {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status and latency once the handler
// chain has run. 5xx responses are logged at error level, 4xx and slow
// requests at warn.
func LoggingWithConfig(cfg LoggingConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(c *gin.Context) {
		if cfg.Skip != nil && cfg.Skip(c) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		req := c.Request
		status := c.Writer.Status()

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.StatusCode(status),
			logger.ClientIP(c.ClientIP()),
			logger.Latency(duration),
			slog.Int("bytes_out", max(c.Writer.Size(), 0)),
		}
		if id, ok := GetRequestID(req.Context()); ok {
			attrs = append(attrs, logger.RequestID(id))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, logger.Error(c.Errors.Last()))
		}

		level := cfg.LogLevel
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case duration > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
			attrs = append(attrs, slog.Bool("slow_request", true))
		}

		cfg.Logger.LogAttrs(req.Context(), level, "HTTP request completed", attrs...)
	}
}
