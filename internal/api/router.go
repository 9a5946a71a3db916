package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jaberDevHub/help-hive-server-side/internal/api/handlers"
	"github.com/jaberDevHub/help-hive-server-side/internal/api/middleware"
	"github.com/jaberDevHub/help-hive-server-side/internal/auth"
	"github.com/jaberDevHub/help-hive-server-side/internal/config"
	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
	"github.com/jaberDevHub/help-hive-server-side/internal/domain/joins"
	"github.com/jaberDevHub/help-hive-server-side/internal/email"
	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
	"github.com/jaberDevHub/help-hive-server-side/internal/storage/mongodb"
	"github.com/jaberDevHub/help-hive-server-side/web"
)

// Router bundles the assembled HTTP handler with the services behind it.
type Router struct {
	Handler http.Handler
}

// NewRouter wires storage, services, handlers, and the middleware chain.
// Routes are registered with method-qualified patterns; the mux answers
// 405 with an Allow header by itself when only the method is wrong.
func NewRouter(cfg config.Config, logger zerolog.Logger, store *mongodb.Store, version, gitCommit, buildDate string) (*Router, error) {
	sessions, err := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session manager init failed: %w", err)
	}

	mailer, err := email.NewService(cfg.Email, logger)
	if err != nil {
		return nil, fmt.Errorf("email service init failed: %w", err)
	}

	eventsService := events.NewService(store.Events(), logger)
	joinsService := joins.NewService(store.Joins(), store.Events(), mailer, logger)

	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	joinsHandler := handlers.NewJoinsHandler(joinsService, cfg.Environment)
	authHandler := handlers.NewAuthHandler(sessions, cfg.Environment)
	health := handlers.NewHealthChecker(store, version, gitCommit)

	requireSession := middleware.RequireSession(sessions, cfg.Environment)
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	limitBody := middleware.RequestSize(middleware.DefaultMaxBodySize)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", web.IndexHandler())
	mux.Handle("GET /robots.txt", web.RobotsTxtHandler())
	mux.Handle("GET /api/health", health.Health())
	mux.Handle("GET /version", VersionHandler(version, gitCommit, buildDate))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("GET /api/openapi.json", OpenAPIHandler())

	mux.Handle("GET /api/events", http.HandlerFunc(eventsHandler.List))
	mux.Handle("POST /api/events", requireSession(limitBody(http.HandlerFunc(eventsHandler.Create))))
	mux.Handle("GET /api/events/{id}", http.HandlerFunc(eventsHandler.Get))
	mux.Handle("PATCH /api/events/{id}", requireSession(limitBody(http.HandlerFunc(eventsHandler.Update))))
	mux.Handle("DELETE /api/events/{id}", requireSession(http.HandlerFunc(eventsHandler.Delete)))
	mux.Handle("POST /api/events/{id}/join", requireSession(limitBody(http.HandlerFunc(joinsHandler.Join))))
	mux.Handle("GET /api/events/user/{email}", http.HandlerFunc(eventsHandler.ListByCreator))
	mux.Handle("GET /api/events/user/{email}/joined", http.HandlerFunc(joinsHandler.ListJoined))

	// Token issuance carries its own, tighter budget on top of the
	// public one the outer chain applies to everything.
	mux.Handle("POST /api/auth/token", limiter.Tier(middleware.TierAuth)(limitBody(http.HandlerFunc(authHandler.Token))))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandler.Logout))

	// Metrics must wrap the mux directly: the mux stamps the matched
	// pattern onto the request it is handed, and any middleware that
	// clones the request in between would hide it from the recorder.
	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.Tracing(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = limiter.Tier(middleware.TierPublic)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.SecurityHeaders(cfg.IsProduction())(handler)
	handler = middleware.Recover(handler)

	return &Router{Handler: handler}, nil
}
