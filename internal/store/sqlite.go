package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/credvault/internal/filex"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/store/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the mapping in the accounts table of a SQLite file.
// The database is opened per operation so every attempt sees the latest
// state on disk, the same as the JSON backend.
type SQLiteStore struct {
	path string
	log  logging.Logger
}

func NewSQLiteStore(path string, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SQLiteStore{path: path, log: log}
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Load(ctx context.Context) Records {
	return loadOrEmpty(ctx, s, s.path, s.log)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// openReadOnly opens the file without running migrations.
func (s *SQLiteStore) openReadOnly() (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+s.path+"?mode=ro")
}

// Read is the strict variant of Load. It never modifies the file: a missing
// file or one without the accounts table reads as empty.
func (s *SQLiteStore) Read(ctx context.Context) (Records, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return Records{}, nil
	}

	db, err := s.openReadOnly()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	defer db.Close()

	var tables int
	if err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'accounts'`,
	).Scan(&tables); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	if tables == 0 {
		return Records{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT username, password_digest, created_at FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	defer rows.Close()

	records := Records{}
	for rows.Next() {
		var rec AccountRecord
		if err := rows.Scan(&rec.Username, &rec.PasswordDigest, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
		}
		records[rec.Username] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	return records, nil
}

// Save replaces every row with records inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, records Records) error {
	if err := filex.EnsureParentDir(s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableStore, err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableStore, err)
	}
	defer db.Close()

	err = withTx(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return err
		}
		for _, rec := range records.Sorted() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO accounts (username, password_digest, created_at) VALUES (?, ?, ?)`,
				rec.Username, rec.PasswordDigest, rec.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert %q: %w", rec.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableStore, err)
	}

	s.log.Debug(ctx, "credentials saved", "path", s.path, "accounts", len(records))
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back
// on error or panic. Panics are rethrown.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
