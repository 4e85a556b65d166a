package kvstore

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := store.Set("reminder_time", `{"hour":20,"minute":0}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := store.Get("reminder_time")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != `{"hour":20,"minute":0}` {
		t.Errorf("Get() = %q, want stored value", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "local.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("milestone_7_2026-08-30", "1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.Has("milestone_7_2026-08-30") {
		t.Error("flag missing after reopen")
	}
}

func TestDelete(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "local.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if store.Has("k") {
		t.Error("Has() = true after Delete()")
	}

	// Deleting again is a no-op
	if err := store.Delete("k"); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}
