package middleware

import (
	"context"
	"net/http"

	"github.com/jaberDevHub/help-hive-server-side/internal/api/respond"
	"github.com/jaberDevHub/help-hive-server-side/internal/auth"
)

type contextKeyAuth string

const sessionClaimsKey contextKeyAuth = "sessionClaims"

// RequireSession guards mutating routes. It reads the session cookie,
// validates the token, and rejects with 401 when either step fails. The
// validated claims land in the request context for handlers that need
// the caller's identity.
func RequireSession(manager *auth.SessionManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", auth.ErrInvalidToken, env)
				return
			}

			token, err := auth.TokenFromCookie(r)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", err, env)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", err, env)
				return
			}

			ctx := ContextWithSessionClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithSessionClaims stores validated claims the way RequireSession
// does. Exported for handler tests that bypass the middleware.
func ContextWithSessionClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, claims)
}

// SessionClaims returns the validated claims RequireSession stored, or
// nil on routes that did not pass through it.
func SessionClaims(r *http.Request) *auth.Claims {
	if r == nil {
		return nil
	}
	if claims, ok := r.Context().Value(sessionClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
