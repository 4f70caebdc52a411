// ABOUTME: Persistent key-value storage backing the session store
// ABOUTME: File-backed storage lives in the XDG config directory; memory storage for tests

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Fixed storage keys for the two persisted session values
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Storage holds string values under fixed keys, like browser local storage
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// SetAll stores every value or none of them
	SetAll(values map[string]string) error
	Remove(keys ...string) error
}

// FileStorage keeps all values in one JSON object on disk
type FileStorage struct {
	configDir string
	mu        sync.Mutex
}

// NewFileStorage creates a file storage rooted at configDir
func NewFileStorage(configDir string) *FileStorage {
	return &FileStorage{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "market")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "market")
}

// Path returns the session file location
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.configDir, "session.json")
}

// Get returns the value stored under key
func (fs *FileStorage) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key
func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		// Unreadable file is replaced rather than blocking a new session
		values = map[string]string{}
	}
	values[key] = value
	return fs.save(values)
}

// SetAll stores values with a single file replace
func (fs *FileStorage) SetAll(values map[string]string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	current, err := fs.load()
	if err != nil {
		current = map[string]string{}
	}
	for k, v := range values {
		current[k] = v
	}
	return fs.save(current)
}

// Remove deletes keys; missing keys are ignored
func (fs *FileStorage) Remove(keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		values = map[string]string{}
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		if err := os.Remove(fs.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return fs.save(values)
}

// load reads the session file; a missing file is an empty store
func (fs *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.Path())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid session file %s: %w", fs.Path(), err)
	}
	return values, nil
}

// save writes the session file through a temp file and rename
func (fs *FileStorage) save(values map[string]string) error {
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.configDir, "session-*.json")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path()); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// MemoryStorage keeps values in process memory
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

// Get returns the value stored under key
func (ms *MemoryStorage) Get(key string) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.values[key]
	return v, ok, nil
}

// Set stores value under key
func (ms *MemoryStorage) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

// SetAll stores values
func (ms *MemoryStorage) SetAll(values map[string]string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for k, v := range values {
		ms.values[k] = v
	}
	return nil
}

// Remove deletes keys
func (ms *MemoryStorage) Remove(keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, k := range keys {
		delete(ms.values, k)
	}
	return nil
}
