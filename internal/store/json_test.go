package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() Records {
	return Records{
		"alice": {Username: "alice", PasswordDigest: "aa11", CreatedAt: "2024-05-01 12:00:00"},
		"João":  {Username: "João", PasswordDigest: "bb22", CreatedAt: "2024-05-02 08:30:00"},
	}
}

func TestJSONFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "credentials.json"), nil)

	records, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, s.Load(context.Background()))
}

func TestJSONFileStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s := NewJSONFileStore(path, nil)

	require.NoError(t, s.Save(ctx, sampleRecords()))

	got := s.Load(ctx)
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileStore_FileLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewJSONFileStore(path, nil)

	require.NoError(t, s.Save(ctx, Records{
		"Zoë": {PasswordDigest: "ff", CreatedAt: "2024-05-01 12:00:00"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "{\n  \"Zoë\": {\n    \"senha\": \"ff\",\n    \"data_criacao\": \"2024-05-01 12:00:00\"\n  }\n}\n"
	assert.Equal(t, want, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := NewJSONFileStore(path, nil)

	_, err := s.Read(ctx)
	require.ErrorIs(t, err, ErrCorruptStore)

	assert.Empty(t, s.Load(ctx))
}

func TestJSONFileStore_EmptyFileIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewJSONFileStore(path, nil).Read(context.Background())
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestJSONFileStore_NullDocumentIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))

	records, err := NewJSONFileStore(path, nil).Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestJSONFileStore_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewJSONFileStore(filepath.Join(blocker, "credentials.json"), nil)
	err := s.Save(context.Background(), sampleRecords())
	assert.ErrorIs(t, err, ErrUnwritableStore)
}

func TestJSONFileStore_SaveReplacesWholeMapping(t *testing.T) {
	ctx := context.Background()
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "credentials.json"), nil)

	require.NoError(t, s.Save(ctx, sampleRecords()))
	require.NoError(t, s.Save(ctx, Records{"bob": {PasswordDigest: "cc", CreatedAt: "2024-06-01 00:00:00"}}))

	got := s.Load(ctx)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "bob")
}
