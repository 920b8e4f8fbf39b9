// api/middleware/logger.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access log line per request. Static assets and
// the /metrics scrape are logged at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		entry := customLog.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    dur.String(),
			"client_ip":  c.ClientIP(),
			"request_id": GetRequestID(c),
		})

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("HTTP")
		case isQuietPath(c.Request.URL.Path):
			entry.Debug("HTTP")
		default:
			entry.Info("HTTP")
		}
	}
}

func isQuietPath(path string) bool {
	return path == "/metrics" || path == "/health" || path == "/" || strings.HasPrefix(path, "/static/")
}
