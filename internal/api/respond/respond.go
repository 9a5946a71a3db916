// Package respond centralizes how handlers write JSON bodies. Every
// error response has the single shape {"message": "..."} so clients
// never need to branch on error format.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/json"

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON body with the given status. By the time
// encoding can fail the status line and part of the body may already be
// on the wire, so appending anything would only corrupt the output; the
// truncated body is left as is.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error body and logs it through the request-scoped
// logger, warn for client errors and error for server errors. An empty
// message falls back to err.Error() in development and test, and to the
// generic status text elsewhere so internals never leak to clients.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	if message == "" {
		if err != nil && (env == "development" || env == "test") {
			message = err.Error()
		} else {
			message = http.StatusText(status)
		}
	}

	if r != nil && err != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	JSON(w, status, ErrorBody{Message: message})
}
