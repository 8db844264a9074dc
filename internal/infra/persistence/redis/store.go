// Package redis keeps the snapshot under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"roombook/internal/snapshot"
)

// Compile-time contract assertion.
var _ snapshot.Store = (*Store)(nil)

// DefaultKey is used when no key is configured.
const DefaultKey = "roombook:snapshot"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Store reads and writes the snapshot with GET and SET.
type Store struct {
	client *redis.Client
	key    string
	owned  bool
}

// NewStore dials Redis and verifies the connection with PING.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	addr := opts.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	s := NewWithClient(client, opts.Key)
	s.owned = true
	return s, nil
}

// NewWithClient wraps an existing client. The caller keeps ownership of it.
func NewWithClient(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Driver returns the driver name.
func (s *Store) Driver() string { return "redis" }

// Key returns the snapshot key.
func (s *Store) Key() string { return s.key }

// Read returns the snapshot stored at the key.
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: redis key %s", snapshot.ErrNoSnapshot, s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	return b, nil
}

// Write stores data at the key without expiry.
func (s *Store) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// Close closes the client when the store dialed it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
