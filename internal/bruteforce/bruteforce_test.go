package bruteforce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrack_SmallAlphabet(t *testing.T) {
	tests := []struct {
		target   string
		attempts int
	}{
		{"a", 1},
		{"b", 2},
		{"aa", 3},
		{"ab", 4},
		{"ba", 5},
		{"bb", 6},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			res, err := Crack(context.Background(), tt.target, WithAlphabet("ab"), WithMaxLength(2))
			require.NoError(t, err)
			assert.Equal(t, tt.target, res.Found)
			assert.Equal(t, tt.attempts, res.Attempts)
		})
	}
}

func TestCrack_DefaultAlphabet(t *testing.T) {
	res, err := Crack(context.Background(), "Z9")
	require.NoError(t, err)
	assert.Equal(t, "Z9", res.Found)

	// 62 single characters, then "Z9" at row 51, column 61 of length two.
	assert.Equal(t, 62+51*62+61+1, res.Attempts)
}

func TestCrack_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Crack(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyTarget)

	_, err = Crack(ctx, "a", WithAlphabet(""))
	assert.ErrorIs(t, err, ErrEmptyAlphabet)

	_, err = Crack(ctx, "abcde")
	assert.ErrorIs(t, err, ErrTargetTooLong)

	res, err := Crack(ctx, "c", WithAlphabet("ab"), WithMaxLength(2))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 6, res.Attempts)
}

func TestCrack_TooLongIsCheckedBeforeSearching(t *testing.T) {
	called := false
	_, err := Crack(context.Background(), "aaa",
		WithAlphabet("a"), WithMaxLength(2),
		WithProgress(1, func(Progress) { called = true }))
	require.ErrorIs(t, err, ErrTargetTooLong)
	assert.False(t, called)
}

func TestCrack_Progress(t *testing.T) {
	var seen []Progress
	res, err := Crack(context.Background(), "bb",
		WithAlphabet("ab"), WithMaxLength(2),
		WithProgress(2, func(p Progress) { seen = append(seen, p) }))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Attempts)

	require.Len(t, seen, 2)
	assert.Equal(t, 2, seen[0].Attempts)
	assert.Equal(t, "b", seen[0].Candidate)
	assert.Equal(t, 4, seen[1].Attempts)
	assert.Equal(t, "ab", seen[1].Candidate)
}

func TestCrack_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Crack(ctx, "zzzz")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrack_CancelledMidSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	res, err := Crack(ctx, "9999", WithProgress(10, func(p Progress) {
		if p.Attempts >= 50 {
			cancel()
		}
	}))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 60, res.Attempts)
}

func TestSearchSpace(t *testing.T) {
	assert.Equal(t, int64(6), SearchSpace(2, 2))
	assert.Equal(t, int64(62+62*62+62*62*62+62*62*62*62), SearchSpace(62, 4))
	assert.Equal(t, int64(0), SearchSpace(10, 0))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("abcd"))
	assert.ErrorIs(t, Validate("abcde"), ErrTargetTooLong)
	assert.NoError(t, Validate("abcde", WithMaxLength(5)))
	assert.ErrorIs(t, Validate(""), ErrEmptyTarget)
	assert.ErrorIs(t, Validate("a", WithAlphabet("")), ErrEmptyAlphabet)
	// length counts characters, not bytes
	assert.NoError(t, Validate("ããã", WithAlphabet("ã"), WithMaxLength(3)))
}
