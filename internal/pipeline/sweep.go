package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/validator"
)

// SweepRequest selects the seeds of a sweep: Count consecutive seeds
// starting at FirstSeed, all at one difficulty and era.
type SweepRequest struct {
	Version    uint32
	Difficulty int
	Era        int
	FirstSeed  uint64
	Count      int

	// Workers bounds the number of levels in flight. Zero uses GOMAXPROCS.
	Workers int
}

// LevelReport is the verdict for one level of a sweep.
type LevelReport struct {
	ID      levelid.ID
	Hash    uint64
	Result  validator.Result
	Elapsed time.Duration
}

// Report aggregates a sweep.
type Report struct {
	RunID   uuid.UUID
	Request SweepRequest
	Started time.Time
	Elapsed time.Duration

	// Levels is ordered by seed.
	Levels []LevelReport

	Passed          int
	FailuresByCheck map[string]int
}

// PassRate returns the share of levels that passed every check.
func (r Report) PassRate() float64 {
	if len(r.Levels) == 0 {
		return 0
	}
	return float64(r.Passed) / float64(len(r.Levels))
}

// Sweep generates and validates every level of req in parallel. Levels are
// independent, so each worker owns its level outright and writes only its
// own slot of the report.
func (p *Pipeline) Sweep(ctx context.Context, req SweepRequest) (Report, error) {
	if req.Count <= 0 {
		return Report{}, errors.New("pipeline: sweep count must be positive")
	}
	base, err := levelid.New(req.Version, req.Difficulty, req.Era, req.FirstSeed)
	if err != nil {
		return Report{}, fmt.Errorf("pipeline: %w", err)
	}
	if req.Workers <= 0 {
		req.Workers = runtime.GOMAXPROCS(0)
	}

	report := Report{
		RunID:           uuid.New(),
		Request:         req,
		Started:         time.Now(),
		Levels:          make([]LevelReport, req.Count),
		FailuresByCheck: make(map[string]int),
	}
	p.logger.Info("sweep started", "run", report.RunID, "levels", req.Count, "workers", req.Workers,
		"difficulty", req.Difficulty, "era", req.Era)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Workers)
	for i := 0; i < req.Count; i++ {
		id := base.WithSeed(req.FirstSeed + uint64(i))
		slot := &report.Levels[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			out := p.Run(id)
			*slot = LevelReport{
				ID:      id,
				Hash:    out.Level.Hash,
				Result:  out.Result,
				Elapsed: time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("pipeline: sweep %s: %w", report.RunID, err)
	}

	for _, lr := range report.Levels {
		if lr.Result.Passed {
			report.Passed++
		}
		for _, name := range lr.Result.FailedChecks() {
			report.FailuresByCheck[name]++
		}
	}
	report.Elapsed = time.Since(report.Started)

	p.logger.Info("sweep finished", "run", report.RunID, "passed", report.Passed,
		"levels", len(report.Levels), "elapsed", report.Elapsed)
	return report, nil
}
