package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/services"
	"github.com/dmitrijs2005/credvault/internal/validation"
)

// Register prompts until an account is created or input ends. A rejected
// username is asked for again; a rejected or unconfirmed password only
// repeats the password prompts. A save failure is reported and ends the
// flow so the user can retry later.
func (a *App) Register(ctx context.Context) error {
	a.say("register.title", nil)

	username := ""
	for {
		if username == "" {
			name, err := getSimpleText(a.reader, a.tr.T("prompt.username", nil), a.out)
			if err != nil {
				return err
			}
			if err := a.registrar.CheckUsername(ctx, name); err != nil {
				a.report(err)
				continue
			}
			username = name
		}

		password, err := a.readPassword("prompt.password")
		if err != nil {
			return err
		}
		if err := validation.Password(password); err != nil {
			a.report(err)
			continue
		}
		confirm, err := a.readPassword("prompt.password_confirm")
		if err != nil {
			return err
		}

		rec, err := a.registrar.Register(ctx, username, password, confirm)
		switch {
		case err == nil:
			a.say("register.success", map[string]any{"Username": rec.Username})
			return nil
		case errors.Is(err, services.ErrInvalidUsername), errors.Is(err, services.ErrUsernameTaken):
			// someone else took the name since it was checked
			a.report(err)
			username = ""
		case errors.Is(err, services.ErrInvalidPassword), errors.Is(err, services.ErrPasswordMismatch):
			a.report(err)
		case errors.Is(err, services.ErrPersistence):
			a.report(err)
			return nil
		default:
			return err
		}
	}
}
