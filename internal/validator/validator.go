// Package validator checks generated levels for completability and balance.
//
// Validation is a read-only pass: ten independent checks run over one
// level and the outcome is reported in a Result. A failing check is a
// normal outcome, never an error.
package validator

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
)

// Validator runs the level checks. It holds no per-level state and is safe
// for concurrent use.
type Validator struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a validator. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Validator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Validator{cfg: cfg, logger: logger}
}

// Validate runs every check against lv. lv is not modified.
func (v *Validator) Validate(lv *level.Level) Result {
	var r Result
	l := &lv.Layout
	phys := v.cfg.Physics

	r.StartAccessible = accessible(l, l.Start)
	if !r.StartAccessible {
		r.fail("START_BLOCKED", "start %v is blocked or unsupported", l.Start)
	}
	r.GoalAccessible = accessible(l, l.Goal)
	if !r.GoalAccessible {
		r.fail("GOAL_BLOCKED", "goal %v is blocked or unsupported", l.Goal)
	}

	r.Reachable = reachable(l, phys)
	if !r.Reachable {
		r.fail("UNREACHABLE", "no standable route from %v to %v", l.Start, l.Goal)
	}

	x, blocker, held, ok := weaponProgression(lv)
	r.WeaponProgression = ok
	if !ok {
		r.fail("WEAPON_LOCKED", "column %d: %s blocks the path, holding %s weapon", x, blocker, held)
	}

	r.DestructionPaths = true
	for _, z := range l.Zones {
		if z.Kind.Transitional() {
			continue
		}
		if n := zonePaths(l, z, level.TierStarting, phys); n == 0 {
			r.DestructionPaths = false
			r.fail("ZONE_BLOCKED", "%s zone [%d,%d) has no path with the starting weapon", z.Kind, z.StartX, z.EndX)
			continue
		}
		if z.HeavyDestruction && zonePaths(l, z, level.TierHeavy, phys) == 0 {
			r.DestructionPaths = false
			r.fail("ZONE_BLOCKED", "heavy %s zone [%d,%d) has no path with the heavy weapon", z.Kind, z.StartX, z.EndX)
		}
	}

	s := v.cfg.Scoring
	r.Breakdown = level.Score(lv, s)
	r.ComputedDifficulty = r.Breakdown.Composite
	r.TargetDifficulty = s.Target(lv.ID.Difficulty())
	r.DifficultyInRange = math.Abs(r.ComputedDifficulty-r.TargetDifficulty) <= s.Tolerance
	if !r.DifficultyInRange {
		r.fail("DIFFICULTY_OUT_OF_RANGE", "score %.2f, target %.2f ± %.2f",
			r.ComputedDifficulty, r.TargetDifficulty, s.Tolerance)
	}

	for _, run := range l.GapRuns() {
		r.LongestGap = max(r.LongestGap, run.Length)
	}
	r.NoImpossibleGaps = r.LongestGap <= phys.MaxJumpDistance
	if !r.NoImpossibleGaps {
		r.fail("GAP_TOO_WIDE", "gap of %d columns exceeds jump distance %d", r.LongestGap, phys.MaxJumpDistance)
	}

	r.CheckpointCount = len(lv.Checkpoints)
	r.EnoughCheckpoints = r.CheckpointCount >= v.cfg.Validation.MinCheckpoints
	if !r.EnoughCheckpoints {
		r.fail("TOO_FEW_CHECKPOINTS", "%d checkpoints, need %d", r.CheckpointCount, v.cfg.Validation.MinCheckpoints)
	}

	r.EntitiesInBounds = true
	for _, p := range lv.Positions() {
		if !l.InBounds(p.X, p.Y) {
			r.EntitiesInBounds = false
			r.fail("ENTITY_OUT_OF_BOUNDS", "entity at %v outside %dx%d", p, l.Width, l.Height)
			break
		}
	}

	r.MaxCascadeDepth = maxCascadeDepth(l)
	r.CascadeDepthOK = r.MaxCascadeDepth <= v.cfg.Validation.MaxCascadeDepth
	if !r.CascadeDepthOK {
		r.fail("CASCADE_TOO_DEEP", "cascade depth %d exceeds %d", r.MaxCascadeDepth, v.cfg.Validation.MaxCascadeDepth)
	}

	r.MetadataConsistent = lv.MetadataConsistent()

	r.Passed = r.StartAccessible && r.GoalAccessible && r.Reachable &&
		r.WeaponProgression && r.DestructionPaths && r.DifficultyInRange &&
		r.NoImpossibleGaps && r.EnoughCheckpoints && r.EntitiesInBounds &&
		r.CascadeDepthOK

	for _, f := range r.Failures {
		v.logger.Debug("check failed", "id", lv.ID, "code", f.Code, "detail", f.Message)
	}
	return r
}

// accessible reports whether p can be occupied and rests on a surface.
func accessible(l *level.Layout, p level.Point) bool {
	if !l.InBounds(p.X, p.Y) || !l.InBounds(p.X, p.Y+1) {
		return false
	}
	switch l.At(p.X, p.Y) {
	case level.CollisionSolid, level.CollisionHazard:
		return false
	}
	switch l.At(p.X, p.Y+1) {
	case level.CollisionSolid, level.CollisionPlatform, level.CollisionDestructible:
		return true
	}
	return false
}

// passable reports whether the player can move through (x, y) holding
// tier. Breakable destructibles count as open.
func passable(l *level.Layout, x, y int, tier level.WeaponTier) bool {
	if !l.InBounds(x, y) {
		return false
	}
	switch l.At(x, y) {
	case level.CollisionNone, level.CollisionPlatform:
		return true
	case level.CollisionDestructible:
		d, _ := l.DestructibleAt(x, y)
		return tier.CanBreak(d.Material)
	}
	return false
}

// supports reports whether (x, y) holds up a player standing on it for a
// player holding tier. Tiles that tier breaks do not count.
func supports(l *level.Layout, x, y int, tier level.WeaponTier) bool {
	switch l.At(x, y) {
	case level.CollisionSolid, level.CollisionPlatform:
		return true
	case level.CollisionDestructible:
		d, _ := l.DestructibleAt(x, y)
		return !tier.CanBreak(d.Material)
	}
	return false
}

// standable reports whether a player holding tier can stand at (x, y).
func standable(l *level.Layout, x, y int, tier level.WeaponTier) bool {
	return passable(l, x, y, tier) && supports(l, x, y+1, tier)
}

// clearStandable is standable without breaking anything at (x, y).
func clearStandable(l *level.Layout, x, y int) bool {
	switch l.At(x, y) {
	case level.CollisionNone, level.CollisionPlatform:
		return l.InBounds(x, y) && supports(l, x, y+1, level.TierStarting)
	}
	return false
}
