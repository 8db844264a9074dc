package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"roombook/pkg/domain"
)

var (
	// ErrNoSnapshot reports that the backend holds no snapshot yet, e.g. on first run.
	ErrNoSnapshot = errors.New("no existing snapshot")
	// ErrLoad wraps failures reading or decoding an existing snapshot.
	ErrLoad = errors.New("snapshot load failed")
	// ErrSave wraps failures encoding or writing a snapshot.
	ErrSave = errors.New("snapshot save failed")
)

// Store holds the encoded snapshot text for one registry. Read returns
// ErrNoSnapshot when nothing has been written yet. Write replaces any previous
// snapshot as a whole.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
	Driver() string
}

// Load reads and decodes the snapshot held by store. Absence is reported as
// ErrNoSnapshot; every other failure is wrapped in ErrLoad.
func Load(ctx context.Context, store Store) ([]domain.Room, error) {
	data, err := store.Read(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	rooms, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return rooms, nil
}

// Save encodes rooms and writes them to store. Failures are wrapped in ErrSave.
func Save(ctx context.Context, store Store, rooms []domain.Room) error {
	var buf bytes.Buffer
	if err := Encode(&buf, rooms); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := store.Write(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
