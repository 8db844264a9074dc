package blob

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	mem, err := Open(ctx, Options{Driver: DriverMemory})
	if err != nil || mem.Driver() != DriverMemory {
		t.Fatalf("memory: %v", err)
	}
	s3, err := Open(ctx, Options{S3: S3Config{Bucket: "rooms", Endpoint: "http://127.0.0.1:9000"}})
	if err != nil || s3.Driver() != DriverS3 {
		t.Fatalf("default s3: %v", err)
	}
	if _, err := Open(ctx, Options{}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
	if _, err := Open(ctx, Options{Driver: "tape"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestBackendsShareNotFoundSemantics(t *testing.T) {
	ctx := context.Background()
	for _, store := range []Store{NewMemory(), NewMockS3ForTests()} {
		if _, _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", store.Driver(), err)
		}
		if _, err := store.Put(ctx, "present", bytes.NewReader([]byte("x")), PutOptions{}); err != nil {
			t.Fatalf("%s: put: %v", store.Driver(), err)
		}
		if _, err := store.Head(ctx, "present"); err != nil {
			t.Fatalf("%s: head: %v", store.Driver(), err)
		}
	}
}
