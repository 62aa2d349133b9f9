package hashing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastArgon() *Argon2idHasher {
	return NewArgon2idHasher(Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

func TestDigest_KnownValue(t *testing.T) {
	// SHA-256("abc") from FIPS 180-2.
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Digest("abc"))
}

func TestDigest_DeterministicAndDistinct(t *testing.T) {
	corpus := []string{"secret1", "secret2", "Secret1", "abcde1", "", "pässwörd9", "correct horse battery staple"}

	seen := make(map[string]string, len(corpus))
	for _, p := range corpus {
		d1 := Digest(p)
		d2 := Digest(p)
		require.Equal(t, d1, d2, "digest of %q must be stable", p)
		require.Len(t, d1, 64)

		if other, ok := seen[d1]; ok {
			t.Fatalf("collision between %q and %q", p, other)
		}
		seen[d1] = p
	}
}

func TestSHA256Hasher_Verify(t *testing.T) {
	h := SHA256Hasher{}
	d, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, h.Verify("secret1", d))
	assert.True(t, h.Verify("secret1", strings.ToUpper(d)), "hex comparison is case-insensitive")
	assert.False(t, h.Verify("wrong12", d))
	assert.False(t, h.Verify("secret1", ""))
}

func TestArgon2idHasher_RoundTrip(t *testing.T) {
	h := fastArgon()

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d1, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotEqual(t, d1, d2, "salted digests differ")
	assert.True(t, h.Verify("secret1", d1))
	assert.True(t, h.Verify("secret1", d2))
	assert.False(t, h.Verify("secret2", d1))
}

func TestArgon2idHasher_MalformedDigestNeverMatches(t *testing.T) {
	h := fastArgon()
	for _, d := range []string{
		"",
		"$argon2id$",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=4294967295,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$$aGFzaA",
	} {
		assert.False(t, h.Verify("secret1", d), "digest %q", d)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		algo     string
		wantName string
		wantErr  error
	}{
		{name: "empty defaults to sha256", algo: "", wantName: AlgorithmSHA256},
		{name: "sha256", algo: "sha256", wantName: AlgorithmSHA256},
		{name: "argon2id mixed case", algo: " Argon2ID ", wantName: AlgorithmArgon2id},
		{name: "unknown", algo: "md5", wantErr: ErrUnknownAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.algo)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, h.Name())
		})
	}
}

func TestMulti_VerifiesBothFormats(t *testing.T) {
	h, err := New(AlgorithmSHA256)
	require.NoError(t, err)

	argonDigest, err := fastArgon().Hash("secret1")
	require.NoError(t, err)

	assert.True(t, h.Verify("secret1", Digest("secret1")))
	assert.True(t, h.Verify("secret1", argonDigest))
	assert.False(t, h.Verify("secret2", argonDigest))
	assert.False(t, h.Verify("secret2", Digest("secret1")))
}
