package services

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/hashing"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/session"
	"github.com/dmitrijs2005/credvault/internal/store"
)

// DefaultMaxAttempts is used when Authenticate gets a non-positive limit.
const DefaultMaxAttempts = 3

// CredentialPrompter supplies login attempts to Authenticate.
type CredentialPrompter interface {
	// Credentials returns the next username and password. remaining is the
	// number of attempts left including this one. An error aborts the login
	// and is returned unchanged.
	Credentials(ctx context.Context, remaining int) (username, password string, err error)
	// Rejected is called after each failed attempt.
	Rejected(ctx context.Context, err error, remaining int)
}

// Authenticator verifies credentials against the store.
type Authenticator struct {
	store  store.Store
	hasher hashing.Hasher
	log    logging.Logger
	opts   options
}

func NewAuthenticator(s store.Store, h hashing.Hasher, log logging.Logger, opts ...Option) *Authenticator {
	if log == nil {
		log = logging.Nop()
	}
	return &Authenticator{store: s, hasher: h, log: log, opts: buildOptions(opts)}
}

// Authenticate runs up to maxAttempts login attempts. It fails with
// ErrNoAccounts without prompting when nobody is registered, and with
// ErrAttemptsExhausted once every attempt was rejected. There is no
// lockout beyond the returned error.
func (a *Authenticator) Authenticate(ctx context.Context, prompter CredentialPrompter, maxAttempts int) (*session.Session, error) {
	records := a.store.Load(ctx)
	if len(records) == 0 {
		return nil, ErrNoAccounts
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for remaining := maxAttempts; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		username, password, err := prompter.Credentials(ctx, remaining)
		if err != nil {
			return nil, err
		}

		name, err := a.verify(records, username, password)
		if err == nil {
			s := session.New(name, a.opts.now())
			a.log.Info(ctx, "login succeeded", "username", name, "session_id", s.ID.String())
			return s, nil
		}

		remaining--
		a.log.Warn(ctx, "login rejected", "username", username, "reason", err.Error(), "remaining", remaining)
		prompter.Rejected(ctx, err, remaining)
	}

	return nil, ErrAttemptsExhausted
}

// Check performs a single attempt against a fresh load and returns the
// username with its stored casing.
func (a *Authenticator) Check(ctx context.Context, username, password string) (string, error) {
	records := a.store.Load(ctx)
	if len(records) == 0 {
		return "", ErrNoAccounts
	}
	return a.verify(records, username, password)
}

func (a *Authenticator) verify(records store.Records, username, password string) (string, error) {
	rec, ok := records.Find(username)
	if !ok {
		return "", ErrUserNotFound
	}
	if !a.hasher.Verify(password, rec.PasswordDigest) {
		return "", ErrWrongPassword
	}
	return rec.Username, nil
}
