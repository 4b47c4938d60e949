// Package keystore persists the session credential between runs. The
// token lives in a single file under the client data directory, the
// terminal counterpart of the web client's fixed localStorage key.
package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed storage key for the session credential.
const tokenFileName = "token"

// Store reads and writes the persisted session credential.
type Store interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)

	// Save persists the token, replacing any previous one.
	Save(token string) error

	// Clear removes the persisted token. Clearing an empty store is
	// not an error.
	Clear() error
}

// FileStore is the on-disk Store implementation.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore keeps the credential under dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
