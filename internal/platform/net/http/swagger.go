package http

import (
	stdhttp "net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the swagger UI at /docs/ under r, reading the document at docURL
func MountSwagger(r Router, docURL string, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(httpSwagger.URL(docURL))
	r.Get("/docs", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		stdhttp.Redirect(w, req, req.URL.Path+"/index.html", stdhttp.StatusMovedPermanently)
	})
	r.Get("/docs/*", ui)
}
