package middleware

import (
	"time"

	"nextgen/internal"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the leveled logger.
// Server errors are logged at WARN, everything else at DEBUG.
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			logger.Warn("%s %s -> %d (%s)", c.Request.Method, path, status, time.Since(start))
			return
		}
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, path, status, time.Since(start))
	}
}
