package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/they4kman/prizegrid/storage"
)

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prizegrid.bolt")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if _, err := store.Get(ctx, "calendarState"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, "calendarState", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "calendarState")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("expected persisted value, got %s", got)
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "prizegrid.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(context.Background(), ""); !errors.Is(err, storage.ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
}
