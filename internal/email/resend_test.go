package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/jaberDevHub/help-hive-server-side/internal/config"
)

// TestSendViaResendSuccess verifies the request Resend receives.
func TestSendViaResendSuccess(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("expected POST /emails, got %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("expected Bearer token in Authorization header, got %q", auth)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req resend.SendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.From != "events@helphive.example" {
			t.Errorf("From = %q, want events@helphive.example", req.From)
		}
		if len(req.To) != 1 || req.To[0] != "recipient@example.com" {
			t.Errorf("To = %v, want [recipient@example.com]", req.To)
		}
		if req.Subject != "Test Subject" {
			t.Errorf("Subject = %q, want Test Subject", req.Subject)
		}
		if !strings.Contains(req.Html, "Test Body") {
			t.Errorf("HTML body = %q, want to contain Test Body", req.Html)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "mock-email-id-123"})
	}))
	defer mockServer.Close()

	svc := newMockedService(t, mockServer.URL)

	err := svc.sendViaResend(context.Background(), "recipient@example.com", "Test Subject", "<html><body>Test Body</body></html>")
	if err != nil {
		t.Errorf("expected successful send, got error: %v", err)
	}
}

// TestSendViaResendRateLimit verifies the 429 path surfaces the reset window.
func TestSendViaResendRateLimit(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Rate limit exceeded"})
	}))
	defer mockServer.Close()

	svc := newMockedService(t, mockServer.URL)

	err := svc.sendViaResend(context.Background(), "recipient@example.com", "Test Subject", "<html><body>Test Body</body></html>")
	if err == nil {
		t.Fatal("expected rate limit error, got nil")
	}

	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("expected rate limit in error message, got: %v", err)
	}
}

// TestSendViaResendContextCancellation verifies a cancelled context stops the call.
func TestSendViaResendContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called with cancelled context")
	}))
	defer mockServer.Close()

	svc := newMockedService(t, mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.sendViaResend(ctx, "recipient@example.com", "Test Subject", "<html><body>Test Body</body></html>")
	if err == nil {
		t.Fatal("expected context cancellation error, got nil")
	}
	if !errors.Is(err, context.Canceled) && !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

// TestSendViaResendNilClient verifies the guard for an uninitialized client.
func TestSendViaResendNilClient(t *testing.T) {
	svc := &Service{
		config: config.EmailConfig{Enabled: true, From: "events@helphive.example"},
		logger: zerolog.Nop(),
	}

	err := svc.sendViaResend(context.Background(), "recipient@example.com", "Test Subject", "<html></html>")
	if err == nil {
		t.Fatal("expected error for nil client, got nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("expected not initialized in error, got: %v", err)
	}
}

// TestSendViaResendAPIError verifies generic API failures are wrapped.
func TestSendViaResendAPIError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Invalid request",
			"name":    "validation_error",
		})
	}))
	defer mockServer.Close()

	svc := newMockedService(t, mockServer.URL)

	err := svc.sendViaResend(context.Background(), "recipient@example.com", "Test Subject", "<html></html>")
	if err == nil {
		t.Fatal("expected API error, got nil")
	}
	if !strings.Contains(err.Error(), "resend API error") {
		t.Errorf("expected resend API error in message, got: %v", err)
	}
}
