// Package store persists account records to a single local file.
//
// The whole mapping is read at the start of every registration or login
// attempt and rewritten in full after every successful registration. There
// is no file locking: two processes saving at the same time can lose an
// update.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/logging"
)

var (
	// ErrCorruptStore means the file exists but could not be decoded. Load
	// recovers from it by returning an empty mapping.
	ErrCorruptStore = errors.New("credential store is corrupt")

	// ErrUnwritableStore wraps every Save failure.
	ErrUnwritableStore = errors.New("credential store is not writable")
)

// Store is the durable username -> AccountRecord mapping.
type Store interface {
	// Load returns the persisted records. A missing file yields an empty
	// mapping; an unreadable or corrupt file is logged and also yields an
	// empty mapping.
	Load(ctx context.Context) Records
	// Save replaces the persisted mapping with records.
	Save(ctx context.Context, records Records) error
	// Path is the backing file.
	Path() string
}

// Open returns the backend selected in cfg.
func Open(cfg *config.Config, log logging.Logger) (Store, error) {
	path := cfg.StorePath()
	switch strings.ToLower(cfg.Store.Backend) {
	case config.BackendJSON:
		return NewJSONFileStore(path, log), nil
	case config.BackendSQLite:
		return NewSQLiteStore(path, log), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

type reader interface {
	Read(ctx context.Context) (Records, error)
}

func loadOrEmpty(ctx context.Context, r reader, path string, log logging.Logger) Records {
	records, err := r.Read(ctx)
	if err != nil {
		log.Warn(ctx, "could not load credentials, starting with an empty store", "path", path, "error", err)
		return Records{}
	}
	return records
}
