package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/credvault/internal/filex"
	"github.com/dmitrijs2005/credvault/internal/logging"
)

// JSONFileStore keeps the mapping in a UTF-8 JSON object keyed by username:
//
//	{
//	  "alice": {
//	    "senha": "<hex digest>",
//	    "data_criacao": "2024-05-01 12:00:00"
//	  }
//	}
type JSONFileStore struct {
	path string
	log  logging.Logger
}

func NewJSONFileStore(path string, log logging.Logger) *JSONFileStore {
	if log == nil {
		log = logging.Nop()
	}
	return &JSONFileStore{path: path, log: log}
}

func (s *JSONFileStore) Path() string { return s.path }

func (s *JSONFileStore) Load(ctx context.Context) Records {
	return loadOrEmpty(ctx, s, s.path, s.log)
}

// Read is the strict variant of Load. A missing file is not an error.
func (s *JSONFileStore) Read(ctx context.Context) (Records, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Records{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records Records
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	return records.normalize(), nil
}

func (s *JSONFileStore) Save(ctx context.Context, records Records) error {
	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnwritableStore, err)
	}
	if err := filex.EnsureParentDir(s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableStore, err)
	}
	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableStore, err)
	}

	s.log.Debug(ctx, "credentials saved", "path", s.path, "accounts", len(records))
	return nil
}

// encodeRecords renders records with two-space indentation and non-ASCII
// characters kept as-is. encoding/json sorts map keys.
func encodeRecords(records Records) ([]byte, error) {
	if records == nil {
		records = Records{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
