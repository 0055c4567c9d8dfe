package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the persistence port for session fields. Absence of a key means
// "no value"; implementations never store empty strings. Deleting a missing
// key is not an error.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage implements Storage using a single JSON file. Values survive
// process restarts; nothing is encrypted. The session fields it holds are
// identifiers, not secrets — the bearer credential itself never goes through
// here.
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage opens the session file at path, creating its directory when
// needed. When an existing file does not parse, the storage is returned
// together with the error: it stays usable (reads act as empty, the next
// write replaces the file), and the caller decides whether to warn or fail.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	s := &FileStorage{path: path}
	if _, err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

// Get returns the stored value for key. An unreadable file reads as empty;
// persisted values are never trusted enough to fail over.
func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false
	}

	value, ok := values[key]
	return value, ok
}

// Set writes value under key
func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		// Unparseable state is dropped; the rewrite below replaces the file.
		values = map[string]string{}
	}

	values[key] = value
	return s.save(values)
}

// Delete removes key entirely. Removing an absent key is a no-op.
func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		values = map[string]string{}
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return s.save(values)
}

// load reads the session file. A missing or empty file reads as empty.
func (s *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return map[string]string{}, nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}

	return values, nil
}

// save writes the session file atomically via a temp file and rename
func (s *FileStorage) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

// MemoryStorage implements Storage in memory. It backs tests and any flow
// that must not touch the disk.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

// Get returns the stored value for key
func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// Set writes value under key
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key entirely
func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
