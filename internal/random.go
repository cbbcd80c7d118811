package internal

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// DefaultResetTokenSize is the raw byte length of reset tokens when the
	// caller does not configure one.
	DefaultResetTokenSize = 8

	maxTokenSize = 64
)

// NewToken returns size cryptographically random bytes from the operating
// system entropy source. There is no deterministic fallback: if the source
// fails, the error must abort the calling operation.
func NewToken(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("token size must be positive")
	}
	if size > maxTokenSize {
		return nil, fmt.Errorf("token size %d exceeds maximum %d", size, maxTokenSize)
	}

	token := make([]byte, size)
	if _, err := rand.Read(token); err != nil {
		return nil, err
	}
	return token, nil
}

// EncodeToken renders raw token bytes as URL-safe base64 without padding.
// This is the transport form embedded in reset links.
func EncodeToken(token []byte) string {
	return base64.RawURLEncoding.EncodeToString(token)
}

// DecodeToken reverses EncodeToken.
func DecodeToken(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty token")
	}
	return raw, nil
}

// TokensEqual compares two tokens in constant time. Length is compared
// first; equal-length inputs take time independent of where they differ.
func TokensEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
