package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/validation"
)

// Registration errors. Validation failures arrive as *validation.Error and
// match ErrInvalidUsername or ErrInvalidPassword.
var (
	ErrInvalidUsername  = validation.ErrInvalidUsername
	ErrInvalidPassword  = validation.ErrInvalidPassword
	ErrUsernameTaken    = errors.New("username already registered")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPersistence      = errors.New("could not persist account")
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("wrong password: %w", ErrInvalidCredentials)
	ErrAttemptsExhausted  = errors.New("login attempts exhausted")
	ErrNoAccounts         = errors.New("no registered accounts")
)
