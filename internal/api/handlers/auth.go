package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/jaberDevHub/help-hive-server-side/internal/api/respond"
	"github.com/jaberDevHub/help-hive-server-side/internal/auth"
	"github.com/jaberDevHub/help-hive-server-side/internal/sanitize"
)

const (
	maxNameLength    = 200
	maxPictureLength = 2048
)

// AuthHandler issues and clears the session cookie. Only the three known
// claim fields are read from the request; anything else in the body is
// ignored rather than signed into the token.
type AuthHandler struct {
	Sessions *auth.SessionManager
	Env      string
}

func NewAuthHandler(sessions *auth.SessionManager, env string) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Env: env}
}

type tokenRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Token serves POST /api/auth/token: validates the claims, signs a session
// token, and sets it as the HttpOnly cookie the rest of the API reads.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Sessions == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	var input tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err, h.Env)
		return
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		respond.Error(w, r, http.StatusBadRequest, "email is required", nil, h.Env)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "email must be a valid email address", err, h.Env)
		return
	}

	name := strings.TrimSpace(sanitize.Text(input.Name))
	if len(name) > maxNameLength {
		respond.Error(w, r, http.StatusBadRequest, "name is too long", nil, h.Env)
		return
	}

	picture := strings.TrimSpace(input.Picture)
	if picture != "" {
		if len(picture) > maxPictureLength || !isHTTPURL(picture) {
			respond.Error(w, r, http.StatusBadRequest, "picture must be a valid URL", nil, h.Env)
			return
		}
	}

	token, expires, err := h.Sessions.Issue(email, name, picture)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "failed to issue token", err, h.Env)
		return
	}

	auth.SetSessionCookie(w, r, token, expires, h.production())
	respond.JSON(w, http.StatusOK, messageResponse{Message: "token issued successfully"})
}

// Logout serves POST /api/auth/logout. The token itself stays valid until
// expiry; only the browser's copy goes away.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, r, h.production())
	respond.JSON(w, http.StatusOK, messageResponse{Message: "logged out successfully"})
}

func (h *AuthHandler) production() bool {
	return h != nil && h.Env == "production"
}

func (h *AuthHandler) env() string {
	if h == nil {
		return ""
	}
	return h.Env
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
