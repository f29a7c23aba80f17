package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

// FileStore keeps the family list as a JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the families through a temporary file and a rename, so a
// crash never leaves a half-written document behind.
func (s *FileStore) Save(_ context.Context, families []models.Family) error {
	data, err := encode(families)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".families-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write families: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write families: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Load reads the families back.
func (s *FileStore) Load(_ context.Context) ([]models.Family, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return decode(data)
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
