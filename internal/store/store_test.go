package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves.db")
	s, err := Open(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	blob := []byte(`{"version":1,"state":{"name":"Round Trip"}}`)

	if err := s.Save(ctx, "slot1", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "slot1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("round trip mismatch: %q vs %q", got, blob)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "slot1", []byte("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "slot1", []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Load(ctx, "slot1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("slot holds %q, want latest save", got)
	}
	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("slots = %d, want 1 after overwrite", len(infos))
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load(context.Background(), "ghost"); !errors.Is(err, ErrNoSave) {
		t.Fatalf("got %v, want ErrNoSave", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "slot1", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "slot1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "slot1"); !errors.Is(err, ErrNoSave) {
		t.Fatalf("double delete: got %v, want ErrNoSave", err)
	}
}

func TestEmptySlotNameRejected(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(context.Background(), "", []byte("x")); err == nil {
		t.Fatalf("expected error for empty slot name")
	}
}
