package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	defaultDataName = "game_time.json"
	defaultDataDir  = ".config/gametracker"
)

// Backend is the raw persistence used for the usage document. Implementations
// read and write the whole document as an opaque byte blob.
type Backend interface {
	// Read returns the document bytes. A missing document is reported as an
	// error satisfying errors.Is(err, os.ErrNotExist).
	Read() ([]byte, error)

	// Write replaces the document. A reader must never observe a
	// half-written document.
	Write(data []byte) error
}

// FileBackend stores the usage document in a single JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at the given path. An empty path
// selects the default location under the user's config directory.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		var err error
		path, err = DefaultDataPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileBackend{path: path}, nil
}

// DefaultDataPath returns ~/.config/gametracker/game_time.json, creating the
// directory if needed.
func DefaultDataPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, defaultDataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dataDir, defaultDataName), nil
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Read() ([]byte, error) {
	return os.ReadFile(b.path)
}

// Write replaces the document via a temp file in the same directory followed
// by a rename, so a concurrent reader sees either the old or the new content.
func (b *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to replace usage file")
	}
	return nil
}
