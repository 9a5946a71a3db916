package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaberDevHub/help-hive-server-side/internal/auth"
)

func newAuthHandler(t *testing.T, env string) *AuthHandler {
	t.Helper()
	manager, err := auth.NewSessionManager("test-master-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthHandler(manager, env)
}

func sessionCookie(res *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range res.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandlerTokenSuccess(t *testing.T) {
	h := newAuthHandler(t, "test")
	body := `{"email": "maya@example.com", "name": "Maya", "picture": "https://example.com/maya.png"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "token issued successfully", decodeError(t, res))

	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.False(t, cookie.Secure)

	claims, err := h.Sessions.Validate(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, "maya@example.com", claims.Email)
	require.Equal(t, "Maya", claims.Name)
	require.Equal(t, "https://example.com/maya.png", claims.Picture)
}

func TestAuthHandlerTokenProductionCookie(t *testing.T) {
	h := newAuthHandler(t, "production")
	body := `{"email": "maya@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestAuthHandlerTokenMissingEmail(t *testing.T) {
	h := newAuthHandler(t, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"name": "Maya"}`))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "email is required", decodeError(t, res))
	require.Nil(t, sessionCookie(res))
}

func TestAuthHandlerTokenInvalidEmail(t *testing.T) {
	h := newAuthHandler(t, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email": "not-an-address"}`))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "email must be a valid email address", decodeError(t, res))
}

func TestAuthHandlerTokenInvalidPicture(t *testing.T) {
	h := newAuthHandler(t, "test")
	body := `{"email": "maya@example.com", "picture": "javascript:alert(1)"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "picture must be a valid URL", decodeError(t, res))
}

func TestAuthHandlerTokenStripsMarkupFromName(t *testing.T) {
	h := newAuthHandler(t, "test")
	body := `{"email": "maya@example.com", "name": "<script>alert(1)</script>Maya"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	claims, err := h.Sessions.Validate(sessionCookie(res).Value)
	require.NoError(t, err)
	require.Equal(t, "Maya", claims.Name)
}

func TestAuthHandlerTokenMalformedBody(t *testing.T) {
	h := newAuthHandler(t, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email":`))
	res := httptest.NewRecorder()

	h.Token(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "invalid request body", decodeError(t, res))
}

func TestAuthHandlerLogout(t *testing.T) {
	h := newAuthHandler(t, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	res := httptest.NewRecorder()

	h.Logout(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "logged out successfully", decodeError(t, res))

	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Less(t, cookie.MaxAge, 0)
}
