package credstore

import "testing"

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// empty store is "no credential", not an error
	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("Load = %q, want tok-123", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if token, _ := store.Load(); token != "" {
		t.Fatalf("expected cleared store, got %q", token)
	}

	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
