package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is the slice of the storage layer the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is the health endpoint's response body.
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

// HealthChecker answers GET /api/health. The endpoint is public and
// unauthenticated; deploy tooling and uptime monitors poll it.
type HealthChecker struct {
	db        Pinger
	version   string
	gitCommit string
}

func NewHealthChecker(db Pinger, version, gitCommit string) *HealthChecker {
	return &HealthChecker{
		db:        db,
		version:   version,
		gitCommit: gitCommit,
	}
}

// Health reports ok with a 200 while the database answers pings, and
// unavailable with a 503 once it stops.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			// Graceful shutdown in progress; tell the balancer to drain us.
			writeHealthJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "shutting_down",
			})
			return
		default:
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]CheckResult{
			"database": h.checkDatabase(ctx),
		}

		status := "ok"
		statusCode := http.StatusOK
		for _, check := range checks {
			if check.Status == "fail" {
				status = "unavailable"
				statusCode = http.StatusServiceUnavailable
				break
			}
		}

		writeHealthJSON(w, statusCode, HealthCheck{
			Status:    status,
			Version:   h.version,
			GitCommit: h.gitCommit,
			Checks:    checks,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()

	if h.db == nil {
		return CheckResult{
			Status:  "fail",
			Message: "database client not initialized",
		}
	}

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := h.db.Ping(dbCtx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		message := "database unreachable: " + err.Error()
		if dbCtx.Err() == context.DeadlineExceeded {
			message = "database ping timed out after 2 seconds"
		}
		return CheckResult{
			Status:    "fail",
			Message:   message,
			LatencyMs: latency,
		}
	}

	return CheckResult{
		Status:    "pass",
		Message:   "mongodb connection successful",
		LatencyMs: latency,
	}
}

func writeHealthJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
