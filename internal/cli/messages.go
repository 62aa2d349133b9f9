package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/bruteforce"
	"github.com/dmitrijs2005/credvault/internal/services"
	"github.com/dmitrijs2005/credvault/internal/validation"
)

// errReported marks an error whose message was already shown to the user.
var errReported = errors.New("reported")

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

func reported(err error) error {
	return errors.Join(errReported, err)
}

// messageID maps a domain error to its catalog entry.
func messageID(err error) string {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return string(verr.Rule)
	case errors.Is(err, services.ErrUsernameTaken):
		return "error.username_taken"
	case errors.Is(err, services.ErrPasswordMismatch):
		return "error.password_mismatch"
	case errors.Is(err, services.ErrPersistence):
		return "error.persistence"
	case errors.Is(err, services.ErrNoAccounts):
		return "error.no_accounts"
	case errors.Is(err, services.ErrAttemptsExhausted):
		return "error.attempts_exhausted"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "error.invalid_credentials"
	case errors.Is(err, bruteforce.ErrTargetTooLong):
		return "error.target_too_long"
	case errors.Is(err, bruteforce.ErrEmptyTarget):
		return "error.empty_target"
	case errors.Is(err, bruteforce.ErrEmptyAlphabet):
		return "error.empty_alphabet"
	case errors.Is(err, bruteforce.ErrNotFound):
		return "error.not_found"
	case errors.Is(err, context.Canceled):
		return "error.interrupted"
	default:
		return "error.unexpected"
	}
}

// report prints a translated explanation of err. Validation failures get
// the "Error:" prefix.
func (a *App) report(err error) {
	id := messageID(err)
	msg := a.tr.T(id, map[string]any{
		"Path":    a.store.Path(),
		"Max":     a.config.Crack.MaxLength,
		"Message": err.Error(),
	})

	var verr *validation.Error
	if errors.As(err, &verr) {
		msg = a.tr.T("error.prefix", map[string]any{"Message": msg})
	}
	a.println(msg)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
