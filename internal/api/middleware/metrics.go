package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/pkg/metrics"
)

// Metrics HTTP 요청 카운터/지연 시간 기록 미들웨어
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			route,
		).Observe(time.Since(start).Seconds())
	}
}
