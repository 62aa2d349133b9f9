// Package services implements account registration and login on top of a
// credential store and a password hasher.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/hashing"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/store"
	"github.com/dmitrijs2005/credvault/internal/validation"
)

// Registrar creates accounts.
type Registrar struct {
	store  store.Store
	hasher hashing.Hasher
	log    logging.Logger
	opts   options
}

func NewRegistrar(s store.Store, h hashing.Hasher, log logging.Logger, opts ...Option) *Registrar {
	if log == nil {
		log = logging.Nop()
	}
	return &Registrar{store: s, hasher: h, log: log, opts: buildOptions(opts)}
}

// Register validates the input against a fresh load of the store, then
// hashes the password and saves the whole mapping with the new account.
//
// Checks run in order and the first failure is returned: username rules,
// username not taken (ignoring case), password rules, confirm equals
// password. Nothing is written unless all of them pass.
func (r *Registrar) Register(ctx context.Context, username, password, confirm string) (*store.AccountRecord, error) {
	records := r.store.Load(ctx)
	if err := checkUsername(username, records); err != nil {
		return nil, err
	}

	if err := validation.Password(password); err != nil {
		return nil, err
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	digest, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := store.NewAccountRecord(username, digest, r.opts.now())
	next := records.Clone()
	next[username] = rec

	if err := r.store.Save(ctx, next); err != nil {
		r.log.Error(ctx, "saving credentials failed", "username", username, "path", r.store.Path(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	r.log.Info(ctx, "account registered", "username", username, "algorithm", r.hasher.Name())
	return &rec, nil
}

// CheckUsername runs only the username checks of Register, so an
// interactive caller can re-prompt before asking for a password.
func (r *Registrar) CheckUsername(ctx context.Context, username string) error {
	return checkUsername(username, r.store.Load(ctx))
}

func checkUsername(username string, records store.Records) error {
	if err := validation.Username(username); err != nil {
		return err
	}
	if records.Has(username) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}
	return nil
}

// Users returns every registered account ordered by username.
func (r *Registrar) Users(ctx context.Context) []store.AccountRecord {
	return r.store.Load(ctx).Sorted()
}
