// Package object keeps the snapshot as a single object in a blob store.
package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"roombook/internal/blob"
	"roombook/internal/snapshot"
)

// Compile-time contract assertion.
var _ snapshot.Store = (*Store)(nil)

// DefaultKey is used when no object key is configured.
const DefaultKey = "snapshots/" + snapshot.DefaultFilename

const contentType = "text/csv"

// Store adapts a blob.Store to snapshot.Store.
type Store struct {
	blobs blob.Store
	key   string
}

// New wraps blobs, storing the snapshot at key (default DefaultKey).
func New(blobs blob.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{blobs: blobs, key: key}
}

// Driver reports the blob driver backing the store.
func (s *Store) Driver() string { return "object/" + string(s.blobs.Driver()) }

// Key returns the object key.
func (s *Store) Key() string { return s.key }

// Read downloads the snapshot object.
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	_, rc, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, fmt.Errorf("%w: object %s", snapshot.ErrNoSnapshot, s.key)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", s.key, err)
	}
	return b, nil
}

// Write uploads data, replacing the previous snapshot object.
func (s *Store) Write(ctx context.Context, data []byte) error {
	_, err := s.blobs.Put(ctx, s.key, bytes.NewReader(data), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"size": strconv.Itoa(len(data))},
	})
	return err
}

// Close is a no-op; blob clients hold no session.
func (s *Store) Close() error { return nil }
