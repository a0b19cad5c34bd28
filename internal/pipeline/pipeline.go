// Package pipeline chains generation and validation: a retry policy that
// regenerates with a new seed until a level passes, and parallel sweeps
// that validate many consecutive seeds.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/generator"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/validator"
)

// ErrAttemptsExhausted is returned when no attempt produced a passing level.
var ErrAttemptsExhausted = errors.New("pipeline: attempts exhausted")

// SeedStep is added to the seed after each failed attempt.
const SeedStep = 12345

// Pipeline generates and validates levels. It is safe for concurrent use.
type Pipeline struct {
	gen    *generator.Generator
	val    *validator.Validator
	logger *log.Logger
}

// New creates a pipeline. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		gen:    generator.New(cfg, logger),
		val:    validator.New(cfg, logger),
		logger: logger,
	}
}

// Outcome is a generated level with its verdict.
type Outcome struct {
	Level    *level.Level
	Result   validator.Result
	Attempts int
}

// Run generates the level for id and validates it once.
func (p *Pipeline) Run(id levelid.ID) Outcome {
	lv := p.gen.Generate(id)
	return Outcome{Level: lv, Result: p.val.Validate(lv), Attempts: 1}
}

// GenerateValid regenerates with seeds id.Seed, id.Seed+SeedStep, ... until
// a level passes or attempts run out. On exhaustion the last outcome is
// returned along with ErrAttemptsExhausted.
func (p *Pipeline) GenerateValid(id levelid.ID, attempts int) (Outcome, error) {
	attempts = max(attempts, 1)

	var out Outcome
	for i := 0; i < attempts; i++ {
		out = p.Run(id)
		out.Attempts = i + 1
		if out.Result.Passed {
			return out, nil
		}

		next := id.WithSeed(id.Seed() + SeedStep)
		if i+1 < attempts {
			p.logger.Info("level failed validation, retrying",
				"id", id, "failed", out.Result.FailedChecks(), "next", next)
		}
		id = next
	}

	p.logger.Warn("no passing level", "attempts", attempts, "last", out.Level.ID)
	return out, fmt.Errorf("%w after %d attempts (last %s failed %v)",
		ErrAttemptsExhausted, attempts, out.Level.ID, out.Result.FailedChecks())
}
