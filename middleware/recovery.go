package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/fixora/backend/core/logger"
)

// Recovery turns a panic in a handler into a logged 500.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			logger.Component("http"),
			logger.Method(c.Request.Method),
			logger.Path(c.Request.URL.Path),
			logger.Error(fmt.Errorf("%v", recovered)),
			slog.String("stack", string(debug.Stack())))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
	})
}
