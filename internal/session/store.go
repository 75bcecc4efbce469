// Package session persists the bearer token between runs and decides whether
// a token is still usable.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the durable copy of the session token.
type Store interface {
	// Token returns the stored token, or "" when none is stored or it cannot be read.
	Token() string
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a single file readable only by its owner.
type FileStore struct {
	path string

	mu       sync.Mutex
	override string
}

// NewFileStore returns a store backed by path. A non-empty override (typically
// from the environment) is returned by reads ahead of the file until Clear.
func NewFileStore(path, override string) *FileStore {
	return &FileStore{path: path, override: strings.TrimSpace(override)}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Token() string {
	tok, err := s.Load()
	if err != nil {
		return ""
	}
	return tok
}

// Load returns the stored token. A missing file is not an error.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	override := s.override
	s.mu.Unlock()
	if override != "" {
		return override, nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session.Load: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes token to disk, creating the parent directory if needed.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session.Save: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	// A saved token supersedes the override for the rest of the run.
	s.override = ""
	return nil
}

// Clear removes the token file and forgets any override.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a store seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryStore) Load() (string, error) {
	return s.Token(), nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("")
}
