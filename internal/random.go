package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const (
	refreshTokenRawSize = 48
	csrfTokenRawSize    = 32
)

// NewRefreshToken returns a fresh opaque refresh token: 48 random bytes,
// base64url without padding. It carries no structure and is never derived
// from the access token.
func NewRefreshToken() (string, error) {
	var raw [refreshTokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

// NewCSRFToken returns a 32-byte random anti-forgery token, hex encoded so
// client-side script can copy it into request headers verbatim.
func NewCSRFToken() (string, error) {
	var raw [csrfTokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}

// HashFingerprint collapses a caller-supplied device descriptor into a
// stable digest suitable for embedding in token claims. Empty input yields
// an empty digest so unbound tokens stay recognizable as such.
func HashFingerprint(fingerprint string) string {
	if fingerprint == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(fingerprint))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
