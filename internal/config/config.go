// Package config provides YAML-based tuning for level generation and
// validation, plus the era-driven difficulty profile.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tuning for the generation-and-validation pipeline.
type Config struct {
	Layout     LayoutConfig     `yaml:"layout"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Validation ValidationConfig `yaml:"validation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LayoutConfig defines level dimensions and zone partitioning.
type LayoutConfig struct {
	BaseWidth           int `yaml:"base_width"`
	WidthPerDifficulty  int `yaml:"width_per_difficulty"`
	WidthPerEra         int `yaml:"width_per_era"`
	BaseHeight          int `yaml:"base_height"`
	HeightPerDifficulty int `yaml:"height_per_difficulty"`

	IntroWidth   int `yaml:"intro_width"`
	GoalWidth    int `yaml:"goal_width"`
	BufferWidth  int `yaml:"buffer_width"`
	MinZoneWidth int `yaml:"min_zone_width"`
	MaxZoneWidth int `yaml:"max_zone_width"`

	MaxGapWidth    int `yaml:"max_gap_width"`
	BaseEnemyCount int `yaml:"base_enemy_count"` // minimum enemies per level, score permitting
	MaxEnemies     int `yaml:"max_enemies"`
	RewardsPerZone int `yaml:"rewards_per_zone"`
}

// PhysicsConfig defines the player movement envelope, in tiles.
type PhysicsConfig struct {
	MaxJumpHeight         int `yaml:"max_jump_height"`
	MaxJumpDistance       int `yaml:"max_jump_distance"`
	StandableSearchRadius int `yaml:"standable_search_radius"`
}

// ScoringConfig defines the composite difficulty score.
type ScoringConfig struct {
	EnemyWeight    float64 `yaml:"enemy_weight"`
	GapWeight      float64 `yaml:"gap_weight"`
	HazardWeight   float64 `yaml:"hazard_weight"`
	ScarcityWeight float64 `yaml:"scarcity_weight"`
	MaterialWeight float64 `yaml:"material_weight"`

	GapScale    float64 `yaml:"gap_scale"`    // Multiplier on summed squared gap widths
	ScarcityCap float64 `yaml:"scarcity_cap"` // Upper bound on enemy/reward ratio

	TargetBase          float64 `yaml:"target_base"`
	TargetPerDifficulty float64 `yaml:"target_per_difficulty"`
	Tolerance           float64 `yaml:"tolerance"`
}

// Target returns the target composite score for a difficulty tier.
func (s ScoringConfig) Target(difficulty int) float64 {
	return s.TargetBase + float64(difficulty)*s.TargetPerDifficulty
}

// ValidationConfig defines pass thresholds that are not part of scoring.
type ValidationConfig struct {
	MinCheckpoints  int `yaml:"min_checkpoints"`
	MaxCascadeDepth int `yaml:"max_cascade_depth"`
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	l := c.Layout
	switch {
	case l.BaseWidth <= 0 || l.BaseHeight <= 0:
		return errors.New("config: layout base dimensions must be positive")
	case l.BaseHeight < 8:
		return fmt.Errorf("config: base_height %d too small (min 8)", l.BaseHeight)
	case l.MinZoneWidth <= 0 || l.MaxZoneWidth < l.MinZoneWidth:
		return fmt.Errorf("config: zone width range [%d,%d] invalid", l.MinZoneWidth, l.MaxZoneWidth)
	case l.IntroWidth < 4 || l.GoalWidth < 4:
		return errors.New("config: intro and goal zones need at least 4 columns")
	case l.BaseWidth < l.IntroWidth+l.GoalWidth+l.MinZoneWidth:
		return fmt.Errorf("config: base_width %d cannot fit intro, boss arena and goal", l.BaseWidth)
	case l.BufferWidth < 0 || l.MaxGapWidth < 1:
		return errors.New("config: buffer_width and max_gap_width out of range")
	case l.BaseEnemyCount < 0 || l.BaseEnemyCount > l.MaxEnemies:
		return fmt.Errorf("config: base_enemy_count %d must be within [0,%d]", l.BaseEnemyCount, l.MaxEnemies)
	}

	p := c.Physics
	if p.MaxJumpHeight <= 0 || p.MaxJumpDistance <= 0 {
		return errors.New("config: jump envelope must be positive")
	}
	if l.MaxGapWidth >= p.MaxJumpDistance {
		return fmt.Errorf("config: max_gap_width %d must be below max_jump_distance %d",
			l.MaxGapWidth, p.MaxJumpDistance)
	}

	if c.Scoring.Tolerance < 0 {
		return errors.New("config: scoring tolerance cannot be negative")
	}
	if c.Validation.MaxCascadeDepth <= 0 {
		return errors.New("config: max_cascade_depth must be positive")
	}

	return c.Difficulty.validate()
}
