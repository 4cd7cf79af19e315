// Package localstore is file-backed key/value persistence for the
// guest-mode client: one JSON file per durable key under a state
// directory, written atomically.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Durable keys.
const (
	KeyAuth  = "auth"
	KeyNotes = "notes"
	KeyTasks = "tasks"
	KeyIdeas = "ideas"
	KeyTheme = "theme"
)

// ErrNotFound is returned when a key has never been saved.
var ErrNotFound = errors.New("key not found")

// Store persists JSON values under a directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Load reads the value stored under key into v.
func (s *Store) Load(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Save writes v under key. The write is atomic: a temp file in the
// same directory is renamed over the target.
func (s *Store) Save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
