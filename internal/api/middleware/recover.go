package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaberDevHub/help-hive-server-side/internal/api/respond"
)

// Recover converts handler panics into 500 responses instead of killing
// the connection. The panic value and stack go to the request-scoped log;
// the client only ever sees the generic message.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				// Recover sits outside CorrelationID, so the request
				// context has no logger yet; use the global one.
				logger := zerolog.Ctx(r.Context())
				if logger.GetLevel() == zerolog.Disabled {
					logger = &log.Logger
				}
				logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				respond.JSON(w, http.StatusInternalServerError, respond.ErrorBody{Message: "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
