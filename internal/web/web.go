// Package web serves the embedded browser workbench UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded UI assets with index.html at the root.
func Handler() http.Handler {
	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(staticFS))
}

// RegisterRoutes mounts the UI at the router root. API routes registered
// on the same router take precedence over the catch-all.
func RegisterRoutes(r chi.Router) {
	r.Handle("/*", Handler())
}
