package store

import "testing"

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetAbsentKey(t *testing.T) {
	s := setupTestStore(t)

	_, ok, err := s.Get("missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for absent key")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set("linguapp_streak", "5"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := s.Get("linguapp_streak")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "5" {
		t.Errorf("got %q ok=%v, want %q ok=true", got, ok, "5")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set("k", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("k", "second"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	got, _, err := s.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s := setupTestStore(t)

	// Re-running migrations on an initialized database must not fail.
	if err := migrate(s.db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
