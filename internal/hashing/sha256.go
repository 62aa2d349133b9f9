package hashing

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SHA256Hasher stores passwords as the lowercase hex SHA-256 of their UTF-8
// bytes. The output is deterministic and 64 characters long.
type SHA256Hasher struct{}

func (SHA256Hasher) Name() string { return AlgorithmSHA256 }

func (SHA256Hasher) Hash(password string) (string, error) {
	return Digest(password), nil
}

func (SHA256Hasher) Verify(password, digest string) bool {
	candidate := Digest(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(strings.ToLower(digest))) == 1
}

// Digest returns the hex SHA-256 digest of password.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
