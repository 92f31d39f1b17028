package kv

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "user_data", []byte(`{"U1":{"channels":["eng"]}}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := store.Get(ctx, "user_data")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := string(data); got != `{"U1":{"channels":["eng"]}}` {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = store.Get(context.Background(), "channel_cache")
	if !goerrors.Is(err, errors.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected second write to win, got %s", data)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := first.Set(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	data, err := second.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "persisted" {
		t.Errorf("expected persisted value, got %s", data)
	}
}
