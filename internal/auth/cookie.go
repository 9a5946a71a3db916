package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie the browser client stores the session
// token under. The front end never reads it; it is HttpOnly by design of
// the contract, not of this constant.
const SessionCookieName = "token"

// SetSessionCookie writes the session cookie. In production the front end is
// served from a different origin, so the cookie must be SameSite=None and
// Secure for browsers to attach it to cross-site API calls. Outside
// production it stays Lax and only turns Secure when the request itself
// arrived over TLS.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time, production bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.Secure = r.TLS != nil
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie overwrites the session cookie with an expired empty one.
// Attributes must match the ones used when setting it or browsers keep the
// original.
func ClearSessionCookie(w http.ResponseWriter, r *http.Request, production bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.Secure = r.TLS != nil
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// TokenFromCookie extracts the session token from the request cookie.
func TokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingToken
	}
	return cookie.Value, nil
}
