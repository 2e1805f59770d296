package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *BunStore {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "results.db")
	s, err := New(context.Background(), "sqlite", dsn)
	if err != nil {
		t.Fatalf("Should not fail opening sqlite store: %s", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("error closing store: %s", err)
		}
	})

	return s
}

func TestSaveAndListResults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &Result{
		Username:    "alice",
		Email:       "alice@example.com",
		Entropy:     53.59,
		CrackTime:   "2 minutes",
		Strength:    "moderate",
		Feedback:    "Include at least one special character.",
		SubmittedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := &Result{
		Username:    "bob",
		Entropy:     133.14,
		CrackTime:   "centuries or more",
		Strength:    "strong",
		SubmittedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	if err := s.SaveResult(ctx, older); err != nil {
		t.Fatalf("Should not fail saving result: %s", err)
	}
	if err := s.SaveResult(ctx, newer); err != nil {
		t.Fatalf("Should not fail saving result: %s", err)
	}

	results, err := s.ListResults(ctx)
	if err != nil {
		t.Fatalf("Should not fail listing results: %s", err)
	}

	if len(results) != 2 {
		t.Fatalf("Should have 2 results, got %d", len(results))
	}

	// Newest first.
	if results[0].Username != "bob" || results[1].Username != "alice" {
		t.Errorf("Results should be ordered newest first: %v", results)
	}

	if results[1].Entropy != 53.59 || results[1].CrackTime != "2 minutes" {
		t.Errorf("Stored fields should round trip: %+v", results[1])
	}
	if results[1].Feedback != "Include at least one special character." {
		t.Errorf("Feedback should round trip: %+v", results[1])
	}
}

func TestSaveResultDefaultsTimestamp(t *testing.T) {
	s := newTestStore(t)

	result := &Result{Username: "carol", Strength: "weak", CrackTime: "less than 1 second"}
	if err := s.SaveResult(context.Background(), result); err != nil {
		t.Fatalf("Should not fail saving result: %s", err)
	}

	if result.SubmittedAt.IsZero() {
		t.Errorf("SaveResult should set a submission timestamp")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), "oracle", "dsn"); err == nil {
		t.Errorf("Unknown drivers should be rejected")
	}
}
