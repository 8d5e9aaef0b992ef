// Package middleware provides the gin middleware of the news API.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Faisalali0159/besofy/internal/metrics"
)

// UnmatchedPath is the path label for requests that hit no route, so
// arbitrary URLs never become label values.
const UnmatchedPath = "unmatched"

// untracked routes are served but not recorded.
var untracked = map[string]struct{}{
	"/metrics": {},
	"/live":    {},
}

// Metrics records request count, latency and in-flight requests labelled by
// route template, e.g. /api/news/:id rather than the concrete article ID.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := untracked[c.FullPath()]; skip {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedPath
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
