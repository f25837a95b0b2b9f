package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records a request count and latency observation for every
// handled route. The endpoint label is the route template, not the raw path,
// so IDs do not explode the cardinality.
func Middleware(rec Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		rec.IncRequest(endpoint, strconv.Itoa(c.Writer.Status()))
		rec.ObserveLatency(endpoint, time.Since(start))
	}
}
