package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore is the durable slot holding the access token between runs. It is
// the Go-side stand-in for the browser's localStorage key: one opaque string,
// read once at startup, written on login, removed on sign-out.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

const tokenFileName = "session.token"

// FileTokenStore persists the token as a single file under the data directory.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store rooted at dataPath.
func NewFileTokenStore(dataPath string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dataPath, tokenFileName)}
}

// Load reads the persisted token. A missing file is not an error; it means no
// session was saved.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with a write-then-rename so a crash mid-write never
// leaves a truncated token behind.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Removing an absent file succeeds.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
