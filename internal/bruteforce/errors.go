package bruteforce

import "errors"

var (
	ErrEmptyTarget   = errors.New("target is empty")
	ErrEmptyAlphabet = errors.New("alphabet is empty")
	ErrTargetTooLong = errors.New("target is longer than the maximum search length")
	ErrNotFound      = errors.New("target not found in search space")
)
