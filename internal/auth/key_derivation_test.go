package auth

import (
	"bytes"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name         string
		masterSecret []byte
		purpose      string
		wantErr      bool
	}{
		{
			name:         "valid derivation",
			masterSecret: []byte("this-is-a-secure-master-secret-for-testing"),
			purpose:      "test-purpose-v1",
			wantErr:      false,
		},
		{
			name:         "empty master secret",
			masterSecret: []byte{},
			purpose:      "test-purpose-v1",
			wantErr:      true,
		},
		{
			name:         "nil master secret",
			masterSecret: nil,
			purpose:      "test-purpose-v1",
			wantErr:      true,
		},
		{
			name:         "empty purpose string is allowed",
			masterSecret: []byte("test-secret"),
			purpose:      "",
			wantErr:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(tt.masterSecret, tt.purpose)

			if tt.wantErr {
				if err == nil {
					t.Errorf("DeriveKey() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("DeriveKey() unexpected error: %v", err)
				return
			}

			if len(key) != DerivedKeyLength {
				t.Errorf("DeriveKey() key length = %d, want %d", len(key), DerivedKeyLength)
			}
		})
	}
}

func TestDerivedKeysAreIndependent(t *testing.T) {
	masterSecret := []byte("shared-master-secret-for-all-keys")

	sessionKey, err := DeriveKey(masterSecret, "session-purpose-v1")
	if err != nil {
		t.Fatalf("failed to derive session key: %v", err)
	}

	otherKey, err := DeriveKey(masterSecret, "other-purpose-v1")
	if err != nil {
		t.Fatalf("failed to derive other key: %v", err)
	}

	if bytes.Equal(sessionKey, otherKey) {
		t.Error("keys for different purposes are identical (should be cryptographically independent)")
	}
}

func TestDeriveSessionKeyIsDeterministic(t *testing.T) {
	masterSecret := []byte("test-master-secret")

	key1, err := DeriveSessionKey(masterSecret)
	if err != nil {
		t.Fatalf("first derivation failed: %v", err)
	}
	if len(key1) != DerivedKeyLength {
		t.Errorf("DeriveSessionKey() key length = %d, want %d", len(key1), DerivedKeyLength)
	}

	key2, err := DeriveSessionKey(masterSecret)
	if err != nil {
		t.Fatalf("second derivation failed: %v", err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("DeriveSessionKey() is not deterministic")
	}
}

func TestDifferentMasterSecretsProduceDifferentKeys(t *testing.T) {
	key1, err := DeriveSessionKey([]byte("first-master-secret"))
	if err != nil {
		t.Fatalf("failed to derive key from first secret: %v", err)
	}

	key2, err := DeriveSessionKey([]byte("second-master-secret"))
	if err != nil {
		t.Fatalf("failed to derive key from second secret: %v", err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("different master secrets produced identical keys")
	}
}
