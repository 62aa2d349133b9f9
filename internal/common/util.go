// Package common holds small helpers shared by credvault packages for
// handling sensitive byte buffers.
package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system random source fails, which only happens on a
// broken platform.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites b with zeros. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// TrimmedString converts a password buffer read from the terminal into a
// string with surrounding whitespace removed, then wipes the buffer.
func TrimmedString(b []byte) string {
	s := strings.TrimSpace(string(b))
	WipeByteArray(b)
	return s
}
