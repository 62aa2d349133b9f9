package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_MissingFileIsEmptyAndNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	s := NewSQLiteStore(path, nil)

	records, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteStore_ReadLeavesEmptyFileUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	s := NewSQLiteStore(path, nil)

	records, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, s.Save(ctx, sampleRecords()))
	assert.Len(t, s.Load(ctx), len(sampleRecords()))
}

func TestSQLiteStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"), nil)

	require.NoError(t, s.Save(ctx, sampleRecords()))

	got := s.Load(ctx)
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Save(ctx, Records{"bob": {Username: "bob", PasswordDigest: "cc", CreatedAt: "2024-06-01 00:00:00"}}))
	got = s.Load(ctx)
	assert.Len(t, got, 1)
	assert.Equal(t, "cc", got["bob"].PasswordDigest)
}

func TestSQLiteStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.db")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a sqlite database ", 200)), 0o600))
	s := NewSQLiteStore(path, nil)

	_, err := s.Read(ctx)
	require.ErrorIs(t, err, ErrCorruptStore)
	assert.Empty(t, s.Load(ctx))
}

func TestSQLiteStore_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewSQLiteStore(filepath.Join(blocker, "credentials.db"), nil)
	assert.ErrorIs(t, s.Save(context.Background(), sampleRecords()), ErrUnwritableStore)
}

func TestSQLiteStore_MigrationFailure(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	s := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"), nil)
	assert.ErrorIs(t, s.Save(context.Background(), sampleRecords()), ErrUnwritableStore)
}
