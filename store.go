package dompet

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
)

// FileStore persists the bearer token as a single file on disk, the
// client-side equivalent of the browser's one storage key. Writes replace
// the token wholesale; there is never a partial update.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath resolves the conventional token location under the user
// config dir.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "unable to resolve user config dir")
	}
	return filepath.Join(dir, "dompet", "token"), nil
}

// Path returns the file the token lives in, so watchers can observe it.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "unable to read token file")
	}
	return strings.TrimSpace(string(raw)), nil
}

// Set persists the token, overwriting any prior value. No validation is
// performed at write time. The write goes through a temp file and rename so
// concurrent readers never observe a torn token.
func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to create token dir")
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to create token file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.CategoryInternal, "unable to set token file mode")
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.CategoryInternal, "unable to write token file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to close token file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to replace token file")
	}
	return nil
}

// Clear removes the persisted token. Clearing an already absent token is a
// no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.CategoryInternal, "unable to remove token file")
	}
	return nil
}

// MemoryStore keeps the token in memory. Used in tests and anywhere
// persistence across restarts is not wanted.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
