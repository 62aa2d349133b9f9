package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// terminalPrompter feeds Authenticate from the App's input.
type terminalPrompter struct {
	a *App
}

func (p terminalPrompter) Credentials(ctx context.Context, remaining int) (string, string, error) {
	username, err := getSimpleText(p.a.reader, p.a.tr.T("prompt.username", nil), p.a.out)
	if err != nil {
		return "", "", err
	}
	password, err := p.a.readPassword("prompt.password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (p terminalPrompter) Rejected(ctx context.Context, err error, remaining int) {
	if remaining > 0 {
		p.a.say("login.rejected", map[string]any{"Remaining": remaining})
	}
}

// readPassword prompts for a password and returns it trimmed. The raw
// buffer is wiped.
func (a *App) readPassword(promptID string) (string, error) {
	pw, err := getPassword(a.reader, a.tr.T(promptID, nil), a.out)
	if err != nil {
		return "", err
	}
	return common.TrimmedString(pw), nil
}

// Login runs the interactive login. Failures the user can recover from are
// printed and nil is returned; end of input is returned as an error.
func (a *App) Login(ctx context.Context) error {
	a.say("login.title", nil)

	s, err := a.auth.Authenticate(ctx, terminalPrompter{a: a}, a.config.Auth.MaxAttempts)
	if err != nil {
		if errors.Is(err, services.ErrNoAccounts) || errors.Is(err, services.ErrAttemptsExhausted) {
			a.report(err)
			return nil
		}
		return err
	}

	a.session.Set(s)
	a.log.Info(ctx, "session started", "session_id", s.ID.String(), "username", s.Username)
	a.say("login.welcome", map[string]any{"Username": s.Username})
	return nil
}

// VerifyLogin is the non-interactive counterpart of Login used by the login
// command. With a username only the password is prompted for and a single
// attempt is made. Failures are printed and returned.
func (a *App) VerifyLogin(ctx context.Context, username string) error {
	if username == "" {
		s, err := a.auth.Authenticate(ctx, terminalPrompter{a: a}, a.config.Auth.MaxAttempts)
		if err != nil {
			return a.fail(err)
		}
		a.say("login.ok", map[string]any{"Username": s.Username})
		return nil
	}

	password, err := a.readPassword("prompt.password")
	if err != nil {
		return err
	}
	name, err := a.auth.Check(ctx, username, password)
	if err != nil {
		a.log.Warn(ctx, "credential check failed", "username", username, "reason", err.Error())
		return a.fail(err)
	}
	a.say("login.ok", map[string]any{"Username": name})
	return nil
}

func (a *App) fail(err error) error {
	a.report(err)
	return reported(err)
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s, ok := a.session.Current()
	if !ok {
		a.say("session.none", nil)
		return nil
	}
	a.say("session.whoami", map[string]any{
		"Username": s.Username,
		"Since":    s.StartedAt.Format(time.DateTime),
		"ID":       s.ID.String(),
	})
	return nil
}

// Switch ends the current session so another user can log in.
func (a *App) Switch(ctx context.Context) error {
	a.say("session.switch", nil)
	a.endSession(ctx)
	return nil
}

func (a *App) endSession(ctx context.Context) {
	s := a.session.Clear()
	if s == nil {
		return
	}
	a.log.Info(ctx, "session ended",
		"session_id", s.ID.String(),
		"username", s.Username,
		"duration", time.Since(s.StartedAt).Round(time.Second).String())
}
