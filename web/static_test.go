package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRobotsTxtHandler(t *testing.T) {
	handler := RobotsTxtHandler()

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	contentType := rec.Header().Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") {
		t.Errorf("Content-Type = %q, want to contain text/plain", contentType)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "User-agent: *") {
		t.Errorf("robots.txt missing User-agent line, got:\n%s", body)
	}
	if !strings.Contains(body, "Disallow: /api/") {
		t.Errorf("robots.txt should keep crawlers out of the JSON API, got:\n%s", body)
	}
}

func TestRobotsTxtHandlerMethods(t *testing.T) {
	handler := RobotsTxtHandler()

	req := httptest.NewRequest(http.MethodPost, "/robots.txt", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestOpenAPIYAMLEmbedded(t *testing.T) {
	if len(OpenAPIYAML) == 0 {
		t.Fatal("embedded OpenAPI document is empty")
	}

	spec := string(OpenAPIYAML)
	for _, s := range []string{"openapi:", "/api/events:", "/api/auth/token:"} {
		if !strings.Contains(spec, s) {
			t.Errorf("OpenAPI document missing %q", s)
		}
	}
}
