package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// IndexHandler serves the landing page at the web root (/).
// The page describes the API surface for humans and crawlers and shows
// live status fetched from /api/health and /version.
//
// Cache headers: 1 hour with revalidation, so edits show up without
// hurting repeat visits. Only GET and HEAD are allowed.
func IndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	})
}
