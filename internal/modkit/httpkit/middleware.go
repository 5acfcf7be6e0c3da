package httpkit

import (
	"net/http"
	"time"

	"maintkpi/internal/platform/metrics"
	"maintkpi/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Slow is the access log warn threshold
	Slow    time.Duration
	CORS    middleware.CORSOptions
	Metrics *metrics.Metrics
}

// CommonStack is the per API middleware, applied after the server's Defaults
// so request ids are already set
func CommonStack(opt StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.AccessLog(middleware.AccessLogOptions{Slow: opt.Slow, Metrics: opt.Metrics}),
		middleware.RecoverJSON,
		middleware.CORS(opt.CORS),
	}
}
