package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"roombook/internal/snapshot"
)

func TestStoreMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := store.Read(context.Background()); !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestStoreWriteRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rooms.csv")
	store := New(path)
	if err := store.Write(ctx, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("unexpected contents %q", b)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
	if store.Path() != path || store.Driver() != "file" || store.Close() != nil {
		t.Fatalf("unexpected store metadata")
	}
}

func TestStoreDefaultPath(t *testing.T) {
	if New("").Path() != snapshot.DefaultFilename {
		t.Fatalf("expected default filename")
	}
}

func TestStoreWriteFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.csv")
	store := New(path)
	if err := store.Write(ctx, []byte("keep")); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A directory where the file should be makes the rename fail.
	blocked := New(filepath.Join(dir, "blocked"))
	if err := os.MkdirAll(filepath.Join(dir, "blocked", "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := blocked.Write(ctx, []byte("x")); err == nil {
		t.Fatalf("expected write error")
	}
	b, err := store.Read(ctx)
	if err != nil || string(b) != "keep" {
		t.Fatalf("previous snapshot damaged: %q %v", b, err)
	}
}
