package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage stores analysis results on the local filesystem. It is the
// default backend for development and single-node deployments.
type LocalStorage struct {
	dir string
}

// Ensure LocalStorage implements Interface
var _ Interface = (*LocalStorage)(nil)

// NewLocalStorage creates a storage backend rooted at dir, creating the
// directory if it does not exist
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	return &LocalStorage{dir: dir}, nil
}

// path resolves name to a file inside the storage directory. Path separators
// and traversal segments are stripped so stored files cannot escape it.
func (s *LocalStorage) path(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid storage name: %q", name)
	}
	return filepath.Join(s.dir, base), nil
}

// Store writes data to a file in the storage directory
func (s *LocalStorage) Store(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	logrus.Infof("Successfully stored %s in %s", name, s.dir)
	return nil
}

// Retrieve reads a previously stored file
func (s *LocalStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return data, nil
}

// List returns the names of stored files matching prefix, sorted by name
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	// os.ReadDir returns entries sorted by name
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// Delete removes a stored file
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	logrus.Infof("Successfully deleted %s from %s", name, s.dir)
	return nil
}
