// Package hashing turns plaintext passwords into the digests stored in the
// credential file and verifies login attempts against them.
//
// The default algorithm is an unsalted SHA-256 hex digest. It is kept for
// compatibility with existing credential files and is a known weakness:
// identical passwords produce identical digests. Operators can opt in to
// argon2id for newly created accounts; Verify accepts both formats, so a file
// may contain a mix of digests.
package hashing

import (
	"errors"
	"fmt"
	"strings"
)

const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2id = "argon2id"
)

// ErrUnknownAlgorithm is returned by New for an unsupported algorithm name.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Hasher produces and verifies password digests.
type Hasher interface {
	// Name identifies the algorithm used for new digests.
	Name() string
	// Hash returns the digest to store for password.
	Hash(password string) (string, error)
	// Verify reports whether password matches a stored digest.
	Verify(password, digest string) bool
}

// New returns a Hasher that creates digests with the named algorithm and
// verifies digests of any supported algorithm. An empty name selects SHA-256.
func New(name string) (Hasher, error) {
	sha := SHA256Hasher{}
	argon := NewArgon2idHasher(DefaultArgon2Params())

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AlgorithmSHA256:
		return &multi{primary: sha, sha: sha, argon: argon}, nil
	case AlgorithmArgon2id:
		return &multi{primary: argon, sha: sha, argon: argon}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// multi dispatches verification on the digest format.
type multi struct {
	primary Hasher
	sha     SHA256Hasher
	argon   *Argon2idHasher
}

func (m *multi) Name() string { return m.primary.Name() }

func (m *multi) Hash(password string) (string, error) { return m.primary.Hash(password) }

func (m *multi) Verify(password, digest string) bool {
	if strings.HasPrefix(digest, argon2idPrefix) {
		return m.argon.Verify(password, digest)
	}
	return m.sha.Verify(password, digest)
}
