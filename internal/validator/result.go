package validator

import (
	"fmt"

	"github.com/vovakirdan/levelforge/internal/level"
)

// ValidationError describes one failed check.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Check names, in report order.
const (
	CheckStartAccessible   = "start_accessible"
	CheckGoalAccessible    = "goal_accessible"
	CheckReachable         = "reachable"
	CheckWeaponProgression = "weapon_progression"
	CheckDestructionPaths  = "destruction_paths"
	CheckDifficulty        = "difficulty_in_range"
	CheckGaps              = "no_impossible_gaps"
	CheckCheckpoints       = "enough_checkpoints"
	CheckEntityBounds      = "entities_in_bounds"
	CheckCascadeDepth      = "cascade_depth"
)

// CheckNames lists every check in report order.
var CheckNames = []string{
	CheckStartAccessible,
	CheckGoalAccessible,
	CheckReachable,
	CheckWeaponProgression,
	CheckDestructionPaths,
	CheckDifficulty,
	CheckGaps,
	CheckCheckpoints,
	CheckEntityBounds,
	CheckCascadeDepth,
}

// Result is the verdict for one level.
type Result struct {
	StartAccessible   bool
	GoalAccessible    bool
	Reachable         bool
	WeaponProgression bool
	DestructionPaths  bool
	DifficultyInRange bool
	NoImpossibleGaps  bool
	EnoughCheckpoints bool
	EntitiesInBounds  bool
	CascadeDepthOK    bool

	// Diagnostics
	ComputedDifficulty float64
	TargetDifficulty   float64
	Breakdown          level.Breakdown
	CheckpointCount    int
	LongestGap         int
	MaxCascadeDepth    int

	// MetadataConsistent reports whether the metadata counts match the
	// entity lists. It does not take part in Passed.
	MetadataConsistent bool

	Failures []ValidationError
	Passed   bool
}

// CheckOutcome pairs a check name with its outcome.
type CheckOutcome struct {
	Name   string
	Passed bool
}

// Checks returns the ten outcomes in report order.
func (r Result) Checks() []CheckOutcome {
	return []CheckOutcome{
		{CheckStartAccessible, r.StartAccessible},
		{CheckGoalAccessible, r.GoalAccessible},
		{CheckReachable, r.Reachable},
		{CheckWeaponProgression, r.WeaponProgression},
		{CheckDestructionPaths, r.DestructionPaths},
		{CheckDifficulty, r.DifficultyInRange},
		{CheckGaps, r.NoImpossibleGaps},
		{CheckCheckpoints, r.EnoughCheckpoints},
		{CheckEntityBounds, r.EntitiesInBounds},
		{CheckCascadeDepth, r.CascadeDepthOK},
	}
}

// FailedChecks returns the names of the checks that did not pass.
func (r Result) FailedChecks() []string {
	var out []string
	for _, c := range r.Checks() {
		if !c.Passed {
			out = append(out, c.Name)
		}
	}
	return out
}

func (r *Result) fail(code, format string, args ...any) {
	r.Failures = append(r.Failures, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
}
