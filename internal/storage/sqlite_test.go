package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "runner", Player: "ada", Score: 100, Level: 2, Distance: 20000},
		{GameID: "runner", Player: "bob", Score: 50, Level: 1, Distance: 9000},
		{GameID: "runner", Player: "cy", Score: 200, Level: 3, Distance: 41000},
		{GameID: "other", Player: "ada", Score: 500, Level: 1},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("runner", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	wantScores := []int{200, 100, 50}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("run %d score = %d, expected %d", i, top[i].Score, want)
		}
	}
	if top[0].Player != "cy" || top[0].Level != 3 || top[0].Distance != 41000 {
		t.Errorf("top run fields not round-tripped: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		if _, err := store.SaveRun(Run{GameID: "runner", Score: i * 10}); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopRuns("runner", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 5 || top[0].Score != 190 {
		t.Errorf("expected 5 runs led by 190, got %d led by %d", len(top), top[0].Score)
	}

	// Non-positive limit falls back to 10
	top, err = store.TopRuns("runner", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 10 {
		t.Errorf("Expected 10 runs for default limit, got %d", len(top))
	}
}

func TestStoreTiesKeepEarlierRun(t *testing.T) {
	store := openTestStore(t)
	first, _ := store.SaveRun(Run{GameID: "runner", Player: "first", Score: 100})
	store.SaveRun(Run{GameID: "runner", Player: "second", Score: 100})

	top, err := store.TopRuns("runner", 2)
	if err != nil {
		t.Fatal(err)
	}
	if top[0].ID != first {
		t.Errorf("tie should rank the earlier run first, got %+v", top[0])
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty leaderboard, got %d", high)
	}

	store.SaveRun(Run{GameID: "runner", Score: 100})
	store.SaveRun(Run{GameID: "runner", Score: 300})
	store.SaveRun(Run{GameID: "runner", Score: 200})

	high, err = store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStorePrune(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 60; i++ {
		store.SaveRun(Run{GameID: "runner", Score: i})
	}
	store.SaveRun(Run{GameID: "other", Score: 1})

	removed, err := store.Prune("runner", DefaultKeep)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if removed != 10 {
		t.Errorf("Prune removed %d rows, expected 10", removed)
	}

	top, _ := store.TopRuns("runner", 100)
	if len(top) != DefaultKeep || top[len(top)-1].Score != 10 {
		t.Errorf("expected the best %d runs down to score 10, got %d ending at %d", DefaultKeep, len(top), top[len(top)-1].Score)
	}
	if other, _ := store.TopRuns("other", 10); len(other) != 1 {
		t.Error("Prune should not touch other games")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{GameID: "runner", Score: 100})
	store.SaveRun(Run{GameID: "other", Score: 500})

	if err := store.ClearRuns("runner"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if top, _ := store.TopRuns("runner", 10); len(top) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(top))
	}
	if top, _ := store.TopRuns("other", 10); len(top) != 1 {
		t.Errorf("Other game should be unaffected, got %d", len(top))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("runner")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "runner", Score: 100, Level: 2, Distance: 16000})
	store.SaveRun(Run{GameID: "runner", Score: 300, Level: 4, Distance: 50000})

	stats, err := store.Stats("runner")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestLevel != 4 || stats.MaxDistance != 50000 {
		t.Errorf("best level/distance = %d/%v", stats.BestLevel, stats.MaxDistance)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreRecordRun(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun(Run{GameID: "runner", Score: i}, 3); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("runner", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 || top[2].Score != 2 {
		t.Errorf("expected the best 3 runs, got %+v", top)
	}
}
