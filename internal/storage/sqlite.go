// Package storage provides SQLite-based persistence for sweep runs and
// per-level verdicts. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/levelforge/internal/pipeline"
)

// Store manages the SQLite database connection for sweep history.
type Store struct {
	db *sql.DB
}

// Run is one recorded sweep.
type Run struct {
	ID         int64
	RunID      string
	Version    uint32
	Difficulty int
	Era        int
	FirstSeed  uint64
	Count      int
	Workers    int
	Passed     int
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// PassRate returns the share of levels in the run that passed.
func (r Run) PassRate() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Count)
}

// LevelResult is the stored verdict for one level of a run.
type LevelResult struct {
	ID                 int64
	RunID              string
	LevelID            string
	Hash               uint64
	Passed             bool
	FailedChecks       []string
	ComputedDifficulty float64
	TargetDifficulty   float64
	CheckpointCount    int
	LongestGap         int
	CascadeDepth       int
	Elapsed            time.Duration
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Seeds and hashes are stored as hex text: they use the full uint64 range.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sweep_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			version INTEGER NOT NULL,
			difficulty INTEGER NOT NULL,
			era INTEGER NOT NULL,
			first_seed TEXT NOT NULL,
			level_count INTEGER NOT NULL,
			workers INTEGER NOT NULL DEFAULT 1,
			passed INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sweep_runs_tier ON sweep_runs(difficulty, era);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			hash TEXT NOT NULL,
			passed INTEGER NOT NULL,
			failed_checks TEXT NOT NULL DEFAULT '',
			computed_difficulty REAL NOT NULL,
			target_difficulty REAL NOT NULL,
			checkpoint_count INTEGER NOT NULL,
			longest_gap INTEGER NOT NULL,
			cascade_depth INTEGER NOT NULL,
			elapsed_us INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// SaveRun records a sweep run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	return insertRun(s.db, run)
}

func insertRun(e execer, run Run) (int64, error) {
	res, err := e.Exec(
		`INSERT INTO sweep_runs
		 (run_id, version, difficulty, era, first_seed, level_count, workers, passed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Version, run.Difficulty, run.Era, hex(run.FirstSeed),
		run.Count, run.Workers, run.Passed, run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveResult records one level verdict. Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	return insertResult(s.db, r)
}

func insertResult(e execer, r LevelResult) (int64, error) {
	res, err := e.Exec(
		`INSERT INTO level_results
		 (run_id, level_id, hash, passed, failed_checks, computed_difficulty, target_difficulty,
		  checkpoint_count, longest_gap, cascade_depth, elapsed_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, hex(r.Hash), r.Passed, strings.Join(r.FailedChecks, ","),
		r.ComputedDifficulty, r.TargetDifficulty, r.CheckpointCount, r.LongestGap,
		r.CascadeDepth, r.Elapsed.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveReport records a sweep and all of its level verdicts in one
// transaction.
func (s *Store) SaveReport(rep pipeline.Report) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	runID := rep.RunID.String()
	if _, err = insertRun(tx, Run{
		RunID:      runID,
		Version:    rep.Request.Version,
		Difficulty: rep.Request.Difficulty,
		Era:        rep.Request.Era,
		FirstSeed:  rep.Request.FirstSeed,
		Count:      len(rep.Levels),
		Workers:    rep.Request.Workers,
		Passed:     rep.Passed,
		Elapsed:    rep.Elapsed,
	}); err != nil {
		return err
	}

	for _, lr := range rep.Levels {
		r := lr.Result
		if _, err = insertResult(tx, LevelResult{
			RunID:              runID,
			LevelID:            lr.ID.Encode(),
			Hash:               lr.Hash,
			Passed:             r.Passed,
			FailedChecks:       r.FailedChecks(),
			ComputedDifficulty: r.ComputedDifficulty,
			TargetDifficulty:   r.TargetDifficulty,
			CheckpointCount:    r.CheckpointCount,
			LongestGap:         r.LongestGap,
			CascadeDepth:       r.MaxCascadeDepth,
			Elapsed:            lr.Elapsed,
		}); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

const runColumns = `id, run_id, version, difficulty, era, first_seed, level_count, workers, passed, elapsed_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var seed string
	var elapsedMS int64
	var createdAt any
	if err := sc.Scan(&r.ID, &r.RunID, &r.Version, &r.Difficulty, &r.Era, &seed,
		&r.Count, &r.Workers, &r.Passed, &elapsedMS, &createdAt); err != nil {
		return Run{}, err
	}
	r.FirstSeed = unhex(seed)
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its run ID. Returns nil if there is none.
func (s *Store) RunByID(runID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM sweep_runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM sweep_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

const resultColumns = `id, run_id, level_id, hash, passed, failed_checks, computed_difficulty,
	target_difficulty, checkpoint_count, longest_gap, cascade_depth, elapsed_us`

func (s *Store) queryResults(where string, args ...any) ([]LevelResult, error) {
	rows, err := s.db.Query(`SELECT `+resultColumns+` FROM level_results WHERE `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var hash, failed string
		var elapsedUS int64
		if err := rows.Scan(&r.ID, &r.RunID, &r.LevelID, &hash, &r.Passed, &failed,
			&r.ComputedDifficulty, &r.TargetDifficulty, &r.CheckpointCount,
			&r.LongestGap, &r.CascadeDepth, &elapsedUS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Hash = unhex(hash)
		if failed != "" {
			r.FailedChecks = strings.Split(failed, ",")
		}
		r.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Results retrieves the verdicts of one run in insertion order.
func (s *Store) Results(runID string) ([]LevelResult, error) {
	return s.queryResults("run_id = ?", runID)
}

// FailedResults retrieves the failing verdicts of one run.
func (s *Store) FailedResults(runID string) ([]LevelResult, error) {
	return s.queryResults("run_id = ? AND passed = 0", runID)
}

// LevelHistory retrieves every recorded verdict for a level identifier.
func (s *Store) LevelHistory(levelID string) ([]LevelResult, error) {
	return s.queryResults("level_id = ?", levelID)
}

// TierStats aggregates all runs at one difficulty and era.
type TierStats struct {
	Difficulty int
	Era        int
	Runs       int
	Levels     int
	Passed     int
	LastRun    time.Time
}

// PassRate returns the share of levels that passed across the runs.
func (t TierStats) PassRate() float64 {
	if t.Levels == 0 {
		return 0
	}
	return float64(t.Passed) / float64(t.Levels)
}

// AllTierStats retrieves statistics for every difficulty and era that has
// been swept, ordered by difficulty then era.
func (s *Store) AllTierStats() ([]TierStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, era, COUNT(*), SUM(level_count), SUM(passed), MAX(created_at)
		 FROM sweep_runs
		 GROUP BY difficulty, era
		 ORDER BY difficulty, era`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tier stats: %w", err)
	}
	defer rows.Close()

	var stats []TierStats
	for rows.Next() {
		var t TierStats
		var lastRun any
		if err := rows.Scan(&t.Difficulty, &t.Era, &t.Runs, &t.Levels, &t.Passed, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		t.LastRun = parseTime(lastRun)
		stats = append(stats, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func hex(v uint64) string {
	return fmt.Sprintf("%016X", v)
}

func unhex(s string) uint64 {
	v, _ := strconv.ParseUint(s, 16, 64)
	return v
}
