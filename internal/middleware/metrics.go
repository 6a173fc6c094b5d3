package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/metrics"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
)

// Metrics records a counter and latency histogram per request, keyed by
// the route template rather than the raw path to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestsTotal.WithLabelValues(
			ctx.Request.Method,
			route,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(ctx.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// BodyLimit rejects request bodies above max bytes before the handler
// reads them. Used for the media upload size ceiling.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)
		ctx.Next()
	}
}

// UploadLimit is BodyLimit at the media gateway's fixed ceiling.
func UploadLimit() gin.HandlerFunc {
	return BodyLimit(types.MaxUploadSize)
}
