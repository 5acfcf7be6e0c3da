package middleware

import (
	"net/http"
	"time"

	"maintkpi/internal/platform/logger"
	"maintkpi/internal/platform/metrics"
	pnet "maintkpi/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests at warn level once they take this long, 0 disables
	Slow time.Duration
	// Metrics receives one observation per request, nil disables
	Metrics *metrics.Metrics
}

type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLog logs one line per request and hands the request id to logger.C for downstream loggers
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequestID(r.Context(), pnet.RequestID(r.Context()))
			r = r.WithContext(ctx)

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(cw, r)
			elapsed := time.Since(start)

			route := routePattern(r)
			opt.Metrics.ObserveRequest(r.Method, route, cw.status, elapsed)

			log := logger.C(ctx)
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}

// routePattern keeps metric label cardinality bounded to mounted routes
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
