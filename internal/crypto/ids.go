package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewUserID returns an opaque 32-character user identifier.
func NewUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewEmergencyID returns 16 hex characters of cryptographic randomness.
func NewEmergencyID() (string, error) {
	return randomHex(8)
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
