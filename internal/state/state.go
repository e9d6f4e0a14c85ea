// Package state persists small pieces of UI state between runs, such as the
// last selected item of a selector. Each selector owns one JSON file under
// the states directory of the flux home.
package state

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoState is returned by Load when nothing was saved yet.
var ErrNoState = errors.New("state: nothing saved")

// Identifier derives the file name for a selector from the command, the
// operation and the repository it runs in. An optional object id narrows
// the state to one object.
func Identifier(command, operation, repo string, id ...string) string {
	parts := append([]string{command, operation, repo}, id...)
	return fmt.Sprintf("%x", md5.Sum([]byte(strings.Join(parts, "-"))))
}

// FileStore reads and writes one state file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for dir/<id>.json, creating dir if needed.
func NewFileStore(dir, id string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("state: create dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, id+".json")}, nil
}

// Path returns the state file path.
func (s *FileStore) Path() string { return s.path }

// Read returns the raw file contents, or ErrNoState.
func (s *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("state: read: %w", err)
	}
	return data, nil
}

// Write replaces the file contents. The data goes to a temp file first and
// is renamed over the target, so readers never observe a partial write.
func (s *FileStore) Write(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("state: create temp: %w", err)
	}
	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("state: write: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("state: close: %w", closeErr)
	}
	if renameErr := os.Rename(tmp.Name(), s.path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("state: finalize: %w", renameErr)
	}
	return nil
}

// Load decodes the stored state into a T.
func Load[T any](s *FileStore) (T, error) {
	var v T
	data, err := s.Read()
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("state: parse %s: %w", s.path, err)
	}
	return v, nil
}

// Save encodes v and writes it.
func Save[T any](s *FileStore, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}
	return s.Write(data)
}
