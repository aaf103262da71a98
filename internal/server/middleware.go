package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"credit-score-client/internal/common/logger"
)

// requestLogging logs one line per request, leveled by status class. Paths
// in ignore are skipped.
func requestLogging(log logger.Logger, ignore ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(ignore))
	for _, p := range ignore {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIp":  c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request completed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("request completed", fields)
		default:
			log.Info("request completed", fields)
		}
	}
}
