package middleware

import (
	"strconv"
	"time"

	"planpulse/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request latency per route. The route template is used
// instead of the raw URI so path parameters do not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
