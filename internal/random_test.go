package internal

import (
	"encoding/hex"
	"testing"
)

func TestNewRefreshTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewRefreshToken()
		if err != nil {
			t.Fatalf("refresh token failed: %v", err)
		}
		if token == "" {
			t.Fatal("empty token")
		}
		if seen[token] {
			t.Fatal("refresh tokens must not repeat")
		}
		seen[token] = true
	}
}

func TestNewCSRFTokenIsHex(t *testing.T) {
	token, err := NewCSRFToken()
	if err != nil {
		t.Fatalf("csrf token failed: %v", err)
	}

	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("token %q is not hex: %v", token, err)
	}
	if len(raw) != 32 {
		t.Fatalf("token carries %d bytes, want 32", len(raw))
	}
}

func TestHashFingerprint(t *testing.T) {
	if got := HashFingerprint(""); got != "" {
		t.Fatalf("empty fingerprint hashed to %q", got)
	}

	first := HashFingerprint("device-a")
	second := HashFingerprint("device-a")
	other := HashFingerprint("device-b")

	if first != second {
		t.Fatal("digest must be stable")
	}
	if first == other {
		t.Fatal("different devices must not collide")
	}
	if first == "device-a" {
		t.Fatal("digest must not echo the input")
	}
}
