package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIndexHandler(t *testing.T) {
	handler := IndexHandler()

	tests := []struct {
		name            string
		method          string
		wantStatus      int
		wantContentType string
	}{
		{
			name:            "GET returns 200",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantContentType: "text/html",
		},
		{
			name:            "HEAD returns 200",
			method:          http.MethodHead,
			wantStatus:      http.StatusOK,
			wantContentType: "text/html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			contentType := rec.Header().Get("Content-Type")
			if !strings.Contains(contentType, tt.wantContentType) {
				t.Errorf("Content-Type = %q, want to contain %q", contentType, tt.wantContentType)
			}

			cacheControl := rec.Header().Get("Cache-Control")
			if !strings.Contains(cacheControl, "max-age=3600") {
				t.Errorf("Cache-Control = %q, want to contain max-age=3600", cacheControl)
			}
		})
	}
}

func TestIndexHandlerMethods(t *testing.T) {
	handler := IndexHandler()

	methods := []string{
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodPatch,
	}

	for _, method := range methods {
		t.Run(method+" returns 405", func(t *testing.T) {
			req := httptest.NewRequest(method, "/", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}

			allow := rec.Header().Get("Allow")
			if !strings.Contains(allow, "GET") {
				t.Errorf("Allow header = %q, want to contain GET", allow)
			}
		})
	}
}

func TestIndexHTMLStructure(t *testing.T) {
	handler := IndexHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	bodyStr := string(body)

	// The page must name every route so crawlers and humans can find
	// the whole surface without opening the contract.
	requiredStrings := []string{
		"HelpHive",
		"/api/openapi.json",
		"/api/health",
		"/api/events",
		"/api/events/{id}",
		"/api/events/{id}/join",
		"/api/events/user/{email}",
		"/api/events/user/{email}/joined",
		"/api/auth/token",
		"/api/auth/logout",
		"/robots.txt",
		"github.com/jaberDevHub/help-hive-server-side",
		"schema.org",
		"WebAPI",
	}

	for _, s := range requiredStrings {
		if !strings.Contains(bodyStr, s) {
			t.Errorf("HTML body missing expected string: %q", s)
		}
	}

	// Live status script.
	if !strings.Contains(bodyStr, "/version") {
		t.Error("HTML body missing /version endpoint reference")
	}
	if !strings.Contains(bodyStr, "fetch") {
		t.Error("HTML body missing fetch call for live status")
	}
}
