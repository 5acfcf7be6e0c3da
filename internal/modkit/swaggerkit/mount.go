// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	_ "embed"
	"net/http"
	"strings"

	phttp "maintkpi/internal/platform/net/http"
)

//go:embed openapi.json
var document []byte

// Mount serves base+"/docs/doc.json" and the UI reading it. base is the public path of r, e.g. "/api/v1"
func Mount(r phttp.Router, base string, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs/doc.json", serveDoc)
	phttp.MountSwagger(r, strings.TrimRight(base, "/")+"/docs/doc.json", true)
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(document)
}
