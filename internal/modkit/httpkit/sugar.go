package httpkit

import (
	"net/http"

	phttp "maintkpi/internal/platform/net/http"
)

// GetJSON mounts a bodiless handler under GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a handler under POST; the body is decoded into T and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Raw mounts a plain http.Handler, e.g. the metrics exporter
func Raw(r Router, path string, h http.Handler) {
	r.Handle(path, h)
}
