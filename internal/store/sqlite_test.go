package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSaveAndListResults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		res := &Result{
			SessionID:   "sess-a",
			Variant:     "wacky-machine",
			Outcome:     "won",
			Score:       10,
			Mistakes:    i,
			Level:       4,
			Puzzles:     10 + i,
			GoalScore:   10,
			MaxMistakes: 3,
			Seed:        int64(100 + i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.SaveResult(ctx, res); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
		if res.ID == "" {
			t.Fatal("SaveResult left ID empty")
		}
	}

	results, err := db.ListResults(ctx, 10)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// Newest first.
	if results[0].Mistakes != 2 || results[2].Mistakes != 0 {
		t.Errorf("wrong order: mistakes %d,%d,%d", results[0].Mistakes, results[1].Mistakes, results[2].Mistakes)
	}
	if !results[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("created_at = %v, want %v", results[0].CreatedAt, base.Add(2*time.Minute))
	}
	if results[0].Seed != 102 {
		t.Errorf("seed = %d, want 102", results[0].Seed)
	}
}

func TestListResultsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res := &Result{
			SessionID: "s", Variant: "gear-works", Outcome: "lost",
			CreatedAt: time.Date(2026, 3, 1, 12, i, 0, 0, time.UTC),
		}
		if err := db.SaveResult(ctx, res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	results, err := db.ListResults(ctx, 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
}

func TestListResultsEmpty(t *testing.T) {
	db := newTestDB(t)

	results, err := db.ListResults(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestVariantStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []struct {
		variant  string
		outcome  string
		score    int
		mistakes int
		level    int
	}{
		{"wacky-machine", "won", 10, 0, 4},
		{"wacky-machine", "won", 10, 2, 3},
		{"wacky-machine", "lost", 4, 3, 2},
		{"sky-courier", "lost", 1, 3, 1},
	}
	for i, row := range seed {
		res := &Result{
			SessionID: "s", Variant: row.variant, Outcome: row.outcome,
			Score: row.score, Mistakes: row.mistakes, Level: row.level,
			CreatedAt: time.Date(2026, 3, 1, 12, i, 0, 0, time.UTC),
		}
		if err := db.SaveResult(ctx, res); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}

	stats, err := db.VariantStats(ctx)
	if err != nil {
		t.Fatalf("VariantStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d, want 2", len(stats))
	}

	// Sorted by variant: sky-courier first.
	if stats[0].Variant != "sky-courier" || stats[1].Variant != "wacky-machine" {
		t.Fatalf("order = %s,%s", stats[0].Variant, stats[1].Variant)
	}

	wm := stats[1]
	if wm.Sessions != 3 || wm.Wins != 2 || wm.Losses != 1 {
		t.Errorf("wacky-machine sessions/wins/losses = %d/%d/%d, want 3/2/1", wm.Sessions, wm.Wins, wm.Losses)
	}
	if wm.AvgScore != 8.0 {
		t.Errorf("avg score = %v, want 8", wm.AvgScore)
	}
	if wm.BestLevel != 4 {
		t.Errorf("best level = %d, want 4", wm.BestLevel)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
