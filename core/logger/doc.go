// Package logger builds structured loggers on top of log/slog and provides
// attribute helpers for the fields the service logs repeatedly.
//
// Loggers are created with functional options:
//
//	log := logger.New(
//		logger.WithEnvironment("fixora", os.Getenv("NODE_ENV")),
//		logger.WithLevelString("debug"),
//	)
//
//	log.Info("email sent",
//		logger.Component("mailer"),
//		logger.MessageID(id),
//		logger.Recipient(to),
//	)
//
// Production and staging write JSON, development writes text at debug level.
//
// Attribute helpers are nil safe: logger.Error(nil), logger.RequestID("")
// and friends return an empty slog.Attr which slog drops, so they can be used
// without guarding.
//
// Context extractors add request-scoped attributes to every *Context call:
//
//	log := logger.New(
//		logger.WithProduction("fixora"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := middleware.RequestIDFromContext(ctx)
//			return logger.RequestID(id), ok
//		}),
//	)
package logger
