package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

// TestMigrationsOrdered verifies migrations are applied in ascending numeric order.
func TestMigrationsOrdered(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("applied %d migrations, want 2", len(versions))
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("migrations not ascending: %v", versions)
		}
	}
}

func TestIndexesExist(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"idx_interactions_created_at", "idx_interactions_session", "idx_interactions_intent"} {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name).Scan(&n); err != nil {
			t.Fatalf("querying sqlite_master: %v", err)
		}
		if n != 1 {
			t.Errorf("index %s missing", name)
		}
	}
}

func TestParseMigrationVersion(t *testing.T) {
	if v, err := parseMigrationVersion("002_session_index.sql"); err != nil || v != 2 {
		t.Errorf("parseMigrationVersion = (%d, %v), want (2, nil)", v, err)
	}
	if _, err := parseMigrationVersion("notes.sql"); err == nil {
		t.Error("expected error for unnumbered migration")
	}
}

func TestSaveAndGetInteraction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)
	in := Interaction{
		ID:          "turn-1",
		SessionID:   "sess-a",
		CreatedAt:   created,
		UserQuery:   "movies like Inception",
		Intent:      "similar_movies",
		Entity:      "inception",
		Response:    "**Movies similar to 'inception'**",
		ResultCount: 10,
	}
	if err := s.SaveInteraction(ctx, in); err != nil {
		t.Fatalf("SaveInteraction: %v", err)
	}

	got, err := s.GetInteraction(ctx, "turn-1")
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	got.CreatedAt = in.CreatedAt
	if got != in {
		t.Errorf("GetInteraction = %+v, want %+v", got, in)
	}
}

func TestSaveInteractionDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	if err := s.SaveInteraction(ctx, Interaction{ID: "t", SessionID: "s", UserQuery: "hi"}); err != nil {
		t.Fatalf("SaveInteraction: %v", err)
	}
	got, err := s.GetInteraction(ctx, "t")
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if got.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want after %v", got.CreatedAt, before)
	}
}

func TestSaveInteractionDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := Interaction{ID: "dup", SessionID: "s", UserQuery: "hi"}
	if err := s.SaveInteraction(ctx, in); err != nil {
		t.Fatalf("SaveInteraction: %v", err)
	}
	if err := s.SaveInteraction(ctx, in); err == nil {
		t.Error("expected error saving duplicate ID")
	}
}

// TestGetInteractionNotFound verifies that retrieving a non-existent ID returns ErrNotFound.
func TestGetInteractionNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetInteraction(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateFeedback(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveInteraction(ctx, Interaction{ID: "f", SessionID: "s", UserQuery: "comedy"}); err != nil {
		t.Fatalf("SaveInteraction: %v", err)
	}
	if err := s.UpdateFeedback(ctx, "f", 1, "great picks"); err != nil {
		t.Fatalf("UpdateFeedback: %v", err)
	}
	got, err := s.GetInteraction(ctx, "f")
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if got.FeedbackScore != 1 || got.FeedbackNotes != "great picks" {
		t.Errorf("feedback = (%d, %q), want (1, %q)", got.FeedbackScore, got.FeedbackNotes, "great picks")
	}

	if err := s.UpdateFeedback(ctx, "nope", 1, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateFeedback(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetRecentInteractions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		sess := "a"
		if i%2 == 1 {
			sess = "b"
		}
		in := Interaction{
			ID:        fmt.Sprintf("turn-%d", i),
			SessionID: sess,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
			UserQuery: fmt.Sprintf("query %d", i),
		}
		if err := s.SaveInteraction(ctx, in); err != nil {
			t.Fatalf("SaveInteraction: %v", err)
		}
	}

	recent, err := s.GetRecentInteractions(ctx, 3)
	if err != nil {
		t.Fatalf("GetRecentInteractions: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d interactions, want 3", len(recent))
	}
	for i, want := range []string{"turn-4", "turn-3", "turn-2"} {
		if recent[i].ID != want {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, want)
		}
	}

	sessB, err := s.GetSessionInteractions(ctx, "b", 10)
	if err != nil {
		t.Fatalf("GetSessionInteractions: %v", err)
	}
	if len(sessB) != 2 || sessB[0].ID != "turn-3" || sessB[1].ID != "turn-1" {
		t.Errorf("session b = %+v", sessB)
	}
}

func TestIntentCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, in := range []string{"greeting", "comedy_movies", "greeting", "similar_movies", "greeting", "comedy_movies"} {
		if err := s.SaveInteraction(ctx, Interaction{ID: fmt.Sprint(i), SessionID: "s", UserQuery: "q", Intent: in}); err != nil {
			t.Fatalf("SaveInteraction: %v", err)
		}
	}

	counts, err := s.IntentCounts(ctx)
	if err != nil {
		t.Fatalf("IntentCounts: %v", err)
	}
	want := []IntentCount{{"greeting", 3}, {"comedy_movies", 2}, {"similar_movies", 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}
