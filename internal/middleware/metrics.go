package middleware

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/urlkurz/internal/metrics"
)

// Metrics is a middleware recording request count, latency and concurrency.
// Requests are labelled by the operation's path template to keep cardinality bounded.
func Metrics(m *metrics.Metrics) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		m.HTTPInflightRequests.Inc()
		defer m.HTTPInflightRequests.Dec()

		route := "unmatched"
		if op := ctx.Operation(); op != nil && op.Path != "" {
			route = op.Path
		}

		next(ctx)

		method := ctx.Method()
		m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(ctx.Status())).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
