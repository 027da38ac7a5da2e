package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mini_crm/internal/models"
)

// Session is the credential kept between requests.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// TokenStore persists the session. Load returns a zero Session, not an
// error, when nothing is stored.
type TokenStore interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save(Session{})
}

// FileStore keeps the session in a JSON file readable only by its owner.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", f.path, err)
	}
	return s, nil
}

// Save replaces the file atomically; the new file is created with mode 0600.
func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
