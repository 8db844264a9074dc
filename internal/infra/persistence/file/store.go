// Package file keeps the snapshot in a single CSV file on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"roombook/internal/snapshot"
)

// Store reads and writes the snapshot at a fixed path. Writes go to a temp
// file in the same directory and are renamed into place, so a failed save
// never truncates the previous snapshot.
type Store struct {
	path string
}

// New returns a store for path, defaulting to snapshot.DefaultFilename.
func New(path string) *Store {
	if path == "" {
		path = snapshot.DefaultFilename
	}
	return &Store{path: path}
}

// Driver returns the driver name.
func (s *Store) Driver() string { return "file" }

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Read returns the file contents or snapshot.ErrNoSnapshot when it does not exist.
func (s *Store) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrNoSnapshot, s.path)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Write replaces the file with data.
func (s *Store) Write(_ context.Context, data []byte) (retErr error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error { return nil }
