package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/pipeline"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: "r1", Count: 4, Passed: 3}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID("r1")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Passed != 3 {
		t.Errorf("RunByID() = %+v, want passed 3", run)
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := openTemp(t)

	want := Run{
		RunID:      "run-a",
		Version:    1,
		Difficulty: 2,
		Era:        7,
		FirstSeed:  0xFFFFFFFFFFFFFFF0, // Above the int64 range
		Count:      10,
		Workers:    4,
		Passed:     9,
		Elapsed:    1500 * time.Millisecond,
	}
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d", id)
	}

	got, err := store.RunByID("run-a")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.FirstSeed != want.FirstSeed || got.Era != 7 || got.Difficulty != 2 || got.Version != 1 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Elapsed != want.Elapsed {
		t.Errorf("Elapsed = %v, want %v", got.Elapsed, want.Elapsed)
	}
	if got.PassRate() != 0.9 {
		t.Errorf("PassRate() = %v, want 0.9", got.PassRate())
	}

	if _, err := store.SaveRun(want); err == nil {
		t.Error("duplicate run ID should be rejected")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTemp(t)
	run, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("RunByID() = %+v, want nil", run)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTemp(t)
	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.SaveRun(Run{RunID: id, Count: 1}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "c" || runs[1].RunID != "b" {
		t.Errorf("RecentRuns(2) = %+v", runs)
	}
}

func TestResults(t *testing.T) {
	store := openTemp(t)
	results := []LevelResult{
		{RunID: "r", LevelID: "L1", Hash: 0xDEADBEEFDEADBEEF, Passed: true, ComputedDifficulty: 5.1, TargetDifficulty: 5.5, CheckpointCount: 4},
		{RunID: "r", LevelID: "L2", Hash: 2, FailedChecks: []string{"reachable", "no_impossible_gaps"}, LongestGap: 7, Elapsed: 250 * time.Microsecond},
		{RunID: "other", LevelID: "L1", Hash: 3, Passed: true},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	got, err := store.Results("r")
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Results() returned %d rows, want 2", len(got))
	}
	if got[0].Hash != 0xDEADBEEFDEADBEEF || !got[0].Passed || got[0].FailedChecks != nil {
		t.Errorf("first result = %+v", got[0])
	}
	if len(got[1].FailedChecks) != 2 || got[1].FailedChecks[1] != "no_impossible_gaps" {
		t.Errorf("FailedChecks = %v", got[1].FailedChecks)
	}
	if got[1].Elapsed != 250*time.Microsecond || got[1].LongestGap != 7 {
		t.Errorf("second result = %+v", got[1])
	}

	failed, err := store.FailedResults("r")
	if err != nil {
		t.Fatalf("FailedResults() failed: %v", err)
	}
	if len(failed) != 1 || failed[0].LevelID != "L2" {
		t.Errorf("FailedResults() = %+v", failed)
	}

	history, err := store.LevelHistory("L1")
	if err != nil {
		t.Fatalf("LevelHistory() failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("LevelHistory() returned %d rows, want 2", len(history))
	}
}

func TestSaveReport(t *testing.T) {
	store := openTemp(t)
	p := pipeline.New(config.Default(), nil)

	rep, err := p.Sweep(context.Background(), pipeline.SweepRequest{Version: 1, Difficulty: 1, Era: 3, FirstSeed: 50, Count: 6, Workers: 2})
	if err != nil {
		t.Fatalf("Sweep() failed: %v", err)
	}
	if err := store.SaveReport(rep); err != nil {
		t.Fatalf("SaveReport() failed: %v", err)
	}

	run, err := store.RunByID(rep.RunID.String())
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Count != 6 || run.Passed != rep.Passed || run.FirstSeed != 50 {
		t.Errorf("stored run = %+v", run)
	}

	results, err := store.Results(rep.RunID.String())
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("Results() returned %d rows, want 6", len(results))
	}
	for i, r := range results {
		lr := rep.Levels[i]
		if r.LevelID != lr.ID.Encode() || r.Hash != lr.Hash || r.Passed != lr.Result.Passed {
			t.Errorf("result %d = %+v, want level %s", i, r, lr.ID)
		}
	}

	// A duplicate run ID rolls the whole report back.
	if err := store.SaveReport(rep); err == nil {
		t.Error("second SaveReport() should fail")
	}
	results, _ = store.Results(rep.RunID.String())
	if len(results) != 6 {
		t.Errorf("rollback left %d rows, want 6", len(results))
	}
}

func TestAllTierStats(t *testing.T) {
	store := openTemp(t)
	runs := []Run{
		{RunID: "a", Difficulty: 1, Era: 2, Count: 10, Passed: 8},
		{RunID: "b", Difficulty: 1, Era: 2, Count: 10, Passed: 10},
		{RunID: "c", Difficulty: 0, Era: 5, Count: 4, Passed: 1},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.AllTierStats()
	if err != nil {
		t.Fatalf("AllTierStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("AllTierStats() returned %d tiers, want 2", len(stats))
	}
	if stats[0].Difficulty != 0 || stats[0].Era != 5 || stats[0].PassRate() != 0.25 {
		t.Errorf("first tier = %+v", stats[0])
	}
	if stats[1].Runs != 2 || stats[1].Levels != 20 || stats[1].Passed != 18 {
		t.Errorf("second tier = %+v", stats[1])
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 0xABCDEF, ^uint64(0)} {
		if got := unhex(hex(v)); got != v {
			t.Errorf("unhex(hex(%d)) = %d", v, got)
		}
	}
}
