// Package middleware holds the HTTP middleware stack. chi and cors types stay behind these adapters
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "maintkpi/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID
func RequestID() Middleware { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For or X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d so slow record queries give up
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching; reports depend on the current date
func NoCache() Middleware { return chimw.NoCache }

// Compress compresses responses at level, e.g. flate.BestSpeed
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// CORSOptions is the subset of go-chi/cors the API exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors. The API is read only so methods default to GET, POST and OPTIONS
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the outer stack every router gets, outermost first
func Defaults(timeout time.Duration) []Middleware {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []Middleware{
		RealIP(),
		RequestID(),
		Timeout(timeout),
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}
