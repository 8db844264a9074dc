package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"roombook/internal/snapshot"
	"roombook/pkg/domain"
)

func TestStoreEmptyDatabase(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "rooms.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	if _, err := store.Read(context.Background()); !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "rooms.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	rooms := []domain.Room{
		{ID: "R1", Building: "Hall", Capacity: 20, Booked: domain.HourSetOf(9)},
		{ID: "R2", Building: "Annex", Capacity: 4},
	}
	if err := snapshot.Save(ctx, store, rooms[:1]); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := snapshot.Save(ctx, store, rooms); err != nil {
		t.Fatalf("second save: %v", err)
	}
	var n int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("expected single state row, got %d (%v)", n, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	got, err := snapshot.Load(ctx, reopened)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != rooms[0] || got[1] != rooms[1] {
		t.Fatalf("unexpected rooms %+v", got)
	}
	if reopened.Driver() != "sqlite" || reopened.Path() != path {
		t.Fatalf("unexpected metadata")
	}
}
