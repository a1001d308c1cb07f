package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

const secretBytes = 32

// newSecret returns a random hex secret for a new token
func newSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "generate token secret")
	}
	return hex.EncodeToString(b), nil
}

// hashSecret returns the SHA-256 of raw as hex, the form kept in storage
func hashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
