package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Retention is how long a stored credential is kept client-side,
// independent of the credential's own expiry.
const Retention = 24 * time.Hour

// Store holds at most one credential.
type Store interface {
	// Get returns the stored credential. It has no side effects.
	Get() (string, bool)
	// Set overwrites any prior credential.
	Set(credential string) error
	// Remove deletes the credential. Removing when absent is not an error.
	Remove() error
}

type storedEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

type storedFile struct {
	JWT *storedEntry `json:"jwt,omitempty"`
}

// FileStore persists the credential as JSON under the state directory.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Get reports absence when the file is missing or unreadable, holds no
// credential, or the retention window has passed.
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var f storedFile
	if err := json.Unmarshal(data, &f); err != nil || f.JWT == nil || f.JWT.Value == "" {
		return "", false
	}
	if !f.JWT.ExpiresAt.IsZero() && !s.now().Before(f.JWT.ExpiresAt) {
		return "", false
	}
	return f.JWT.Value, true
}

// Set writes the credential with a fresh retention window.
func (s *FileStore) Set(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("session.Set: create state dir: %w", err)
	}
	data, err := json.Marshal(storedFile{JWT: &storedEntry{
		Value:     credential,
		ExpiresAt: s.now().Add(Retention).UTC(),
	}})
	if err != nil {
		return fmt.Errorf("session.Set: marshal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("session.Set: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("session.Set: rename: %w", err)
	}
	return nil
}

// Remove deletes the backing file.
func (s *FileStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.Remove: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential in memory with the same retention rules.
type MemoryStore struct {
	mu        sync.Mutex
	value     string
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryStore returns an empty MemoryStore. The zero value is also ready to use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == "" || !s.clock().Before(s.expiresAt) {
		return "", false
	}
	return s.value, true
}

func (s *MemoryStore) Set(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = credential
	s.expiresAt = s.clock().Add(Retention)
	return nil
}

func (s *MemoryStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.expiresAt = time.Time{}
	return nil
}

func (s *MemoryStore) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
