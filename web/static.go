package web

import (
	_ "embed"
	"net/http"
)

//go:embed robots.txt
var robotsTxt []byte

// RobotsTxtHandler serves robots.txt. Crawlers get the landing page and
// the OpenAPI contract; the JSON API itself is off limits.
func RobotsTxtHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(robotsTxt)
	})
}
