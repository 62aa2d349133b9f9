// Package bruteforce demonstrates exhaustive password search over a small
// alphabet. It is meant to show why short passwords are weak, not to attack
// stored digests.
package bruteforce

import (
	"context"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

const (
	DefaultAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultMaxLength     = 4
	DefaultProgressEvery = 1000
)

// Result describes a finished search. Attempts counts comparisons, starting
// at one.
type Result struct {
	Found    string
	Attempts int
	Elapsed  time.Duration
}

// Progress is reported every N attempts.
type Progress struct {
	Attempts  int
	Candidate string
	Elapsed   time.Duration
}

type options struct {
	alphabet   string
	maxLength  int
	every      int
	onProgress func(Progress)
}

type Option func(*options)

func newOptions(opts []Option) options {
	o := options{alphabet: DefaultAlphabet, maxLength: DefaultMaxLength, every: DefaultProgressEvery}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) validate(target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	if o.alphabet == "" {
		return ErrEmptyAlphabet
	}
	if n := utf8.RuneCountInString(target); n > o.maxLength {
		return fmt.Errorf("%w: %d > %d", ErrTargetTooLong, n, o.maxLength)
	}
	return nil
}

// Validate reports the error Crack would return for target before it
// starts searching.
func Validate(target string, opts ...Option) error {
	return newOptions(opts).validate(target)
}

func WithAlphabet(alphabet string) Option {
	return func(o *options) { o.alphabet = alphabet }
}

func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// WithProgress calls fn after every `every` attempts. A non-positive every
// keeps the default interval.
func WithProgress(every int, fn func(Progress)) Option {
	return func(o *options) {
		if every > 0 {
			o.every = every
		}
		o.onProgress = fn
	}
}

// Crack enumerates candidates of length 1 through the maximum length, in
// odometer order over the alphabet with the rightmost position changing
// fastest, until one equals target. The context is checked at every
// progress interval.
func Crack(ctx context.Context, target string, opts ...Option) (Result, error) {
	o := newOptions(opts)
	if err := o.validate(target); err != nil {
		return Result{}, err
	}
	alpha := []rune(o.alphabet)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	attempts := 0
	for n := 1; n <= o.maxLength; n++ {
		idx := make([]int, n)
		buf := make([]rune, n)
		for {
			for i, k := range idx {
				buf[i] = alpha[k]
			}
			candidate := string(buf)
			attempts++

			if candidate == target {
				return Result{Found: candidate, Attempts: attempts, Elapsed: time.Since(start)}, nil
			}

			if attempts%o.every == 0 {
				if err := ctx.Err(); err != nil {
					return Result{Attempts: attempts, Elapsed: time.Since(start)}, err
				}
				if o.onProgress != nil {
					o.onProgress(Progress{Attempts: attempts, Candidate: candidate, Elapsed: time.Since(start)})
				}
			}

			if !advance(idx, len(alpha)) {
				break
			}
		}
	}

	return Result{Attempts: attempts, Elapsed: time.Since(start)}, ErrNotFound
}

// advance increments idx as a base-size odometer and reports false once it
// wraps around.
func advance(idx []int, size int) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < size {
			return true
		}
		idx[i] = 0
	}
	return false
}

// SearchSpace is the number of candidates of length 1..maxLength over an
// alphabet of the given size, saturating at math.MaxInt64.
func SearchSpace(alphabetSize, maxLength int) int64 {
	if alphabetSize <= 0 {
		return 0
	}
	var total, pow int64 = 0, 1
	for n := 1; n <= maxLength; n++ {
		if pow > math.MaxInt64/int64(alphabetSize) {
			return math.MaxInt64
		}
		pow *= int64(alphabetSize)
		if total > math.MaxInt64-pow {
			return math.MaxInt64
		}
		total += pow
	}
	return total
}
