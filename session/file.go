package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileKV is a KV persisted as a small YAML map, so a session survives
// console restarts. The file is created with 0600: it holds the token.
type FileKV struct {
	mu   sync.Mutex
	path string
	vals map[string]string
}

// OpenFile loads the store at path, starting empty if the file is missing.
func OpenFile(path string) (*FileKV, error) {
	f := &FileKV{path: path, vals: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f.vals); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if f.vals == nil {
		f.vals = map[string]string{}
	}
	return f, nil
}

func (f *FileKV) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vals[key]
	return v, ok
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vals[key] = value
	return f.writeLocked()
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.vals, key)
	return f.writeLocked()
}

func (f *FileKV) writeLocked() error {
	data, err := yaml.Marshal(f.vals)
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// MapKV is an in-memory KV for tests and for running without persistence.
type MapKV map[string]string

func (m MapKV) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MapKV) Delete(key string) error {
	delete(m, key)
	return nil
}
