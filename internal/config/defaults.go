package config

import (
	_ "embed"
)

//go:embed defaults/levelforge.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/levelforge.yaml.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			BaseWidth:           120,
			WidthPerDifficulty:  20,
			WidthPerEra:         6,
			BaseHeight:          16,
			HeightPerDifficulty: 2,
			IntroWidth:          16,
			GoalWidth:           14,
			BufferWidth:         5,
			MinZoneWidth:        24,
			MaxZoneWidth:        36,
			MaxGapWidth:         3,
			BaseEnemyCount:      6,
			MaxEnemies:          120,
			RewardsPerZone:      4,
		},
		Physics: PhysicsConfig{
			MaxJumpHeight:         4,
			MaxJumpDistance:       5,
			StandableSearchRadius: 3,
		},
		Scoring: ScoringConfig{
			EnemyWeight:         0.35,
			GapWeight:           0.20,
			HazardWeight:        0.10,
			ScarcityWeight:      0.15,
			MaterialWeight:      0.20,
			GapScale:            0.1,
			ScarcityCap:         10,
			TargetBase:          5.5,
			TargetPerDifficulty: 3.0,
			Tolerance:           1.5,
		},
		Validation: ValidationConfig{
			MinCheckpoints:  3,
			MaxCascadeDepth: 16,
		},
		Difficulty: DifficultyConfig{
			Anchors: DefaultAnchors(),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
