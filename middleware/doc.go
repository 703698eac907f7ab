// Package middleware provides the gin middleware shared by the HTTP server:
// request ids, security headers, request logging and panic recovery.
//
//	r := gin.New()
//	r.Use(
//		middleware.RequestID(),
//		middleware.LoggingWithConfig(middleware.LoggingConfig{
//			Logger: log,
//			Skip: func(c *gin.Context) bool {
//				return c.Request.URL.Path == "/metrics"
//			},
//		}),
//		middleware.Recovery(log),
//	)
//
// RequestID puts the id on the request context, so a logger built with
// logger.WithContextExtractors(middleware.RequestIDExtractor) tags every
// record written during the request.
package middleware
