package auth

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// DerivedKeyLength is the length of derived keys in bytes (32 bytes = 256 bits for HMAC-SHA256)
	DerivedKeyLength = 32

	// Key derivation purpose strings for HKDF
	purposeSession = "helphive-session-v1"
)

// ErrInvalidMasterSecret is returned when the master secret is invalid
var ErrInvalidMasterSecret = errors.New("master secret cannot be empty")

// DeriveKey derives a cryptographic key from a master secret using HKDF-SHA256
// as specified in RFC 5869. Keys derived with different purpose strings are
// cryptographically independent, so leaking one derived key compromises
// neither the master secret nor keys derived for other purposes.
func DeriveKey(masterSecret []byte, purpose string) ([]byte, error) {
	if len(masterSecret) == 0 {
		return nil, ErrInvalidMasterSecret
	}

	// salt=nil is acceptable per RFC 5869 (defaults to zeros);
	// info=purpose provides domain separation between key uses
	reader := hkdf.New(sha256.New, masterSecret, nil, []byte(purpose))

	derivedKey := make([]byte, DerivedKeyLength)
	if _, err := io.ReadFull(reader, derivedKey); err != nil {
		return nil, err
	}

	return derivedKey, nil
}

// DeriveSessionKey derives the HMAC key used to sign session cookie tokens.
func DeriveSessionKey(masterSecret []byte) ([]byte, error) {
	return DeriveKey(masterSecret, purposeSession)
}
