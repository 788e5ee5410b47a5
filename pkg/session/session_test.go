package session

import (
	"context"
	"os"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	// No state saved yet
	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if state != nil {
		t.Fatal("Load should return nil before any Save")
	}

	saved := &State{
		Subject:  "patient-042",
		Category: "symptom",
		Chart:    "heatmap",
		Theme:    "viridis",
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("Save should stamp UpdatedAt")
	}

	state, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if state == nil {
		t.Fatal("Load should return the saved state")
	}
	if state.Subject != "patient-042" || state.Theme != "viridis" {
		t.Errorf("Loaded state = %+v", state)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	state, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if state != nil {
		t.Error("Load should return nil after Clear")
	}

	// Clearing twice is not an error
	if err := store.Clear(ctx); err != nil {
		t.Errorf("Second Clear failed: %v", err)
	}
}

func TestFileStoreCorruptState(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}

	state, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on corrupt state should not error: %v", err)
	}
	if state != nil {
		t.Error("Corrupt state should read as absent")
	}
}
