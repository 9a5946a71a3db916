package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a session token. The participant email doubles as the
// registered subject so the token stays readable by standard JWT tooling.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager signs and validates the HS256 session tokens issued into the
// browser cookie. The signing key is derived from the master secret, never
// used raw.
type SessionManager struct {
	key    []byte
	ttl    time.Duration
	issuer string
}

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

const Issuer = "helphive-server"

func NewSessionManager(masterSecret string, ttl time.Duration) (*SessionManager, error) {
	key, err := DeriveSessionKey([]byte(masterSecret))
	if err != nil {
		return nil, err
	}
	return &SessionManager{
		key:    key,
		ttl:    ttl,
		issuer: Issuer,
	}, nil
}

// Issue signs a session token for the given identity and returns it together
// with its expiry time, which callers need to stamp the cookie.
func (m *SessionManager) Issue(email, name, picture string) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		Email:   email,
		Name:    name,
		Picture: picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate parses a session token and returns its claims. Expired, tampered,
// or foreign-keyed tokens all come back as ErrInvalidToken.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
