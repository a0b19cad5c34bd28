package config

import (
	"errors"
	"fmt"
	"math"
)

// MaxEra is the upper bound of the era scale.
const MaxEra = 9.0

// DifficultyParams are the generator scaling values for one era.
type DifficultyParams struct {
	EnemyCountMultiplier float64 `yaml:"enemy_count_multiplier"`
	EnemyHPMultiplier    float64 `yaml:"enemy_hp_multiplier"`
	EnemySpeedMultiplier float64 `yaml:"enemy_speed_multiplier"`
	ShootPercentage      float64 `yaml:"shoot_percentage"` // Share of enemies that fire projectiles
	BossHP               float64 `yaml:"boss_hp"`
}

// Anchor pins DifficultyParams at an era value.
type Anchor struct {
	Era    float64          `yaml:"era"`
	Params DifficultyParams `yaml:"params"`
}

// DifficultyConfig holds the interpolation control points, sorted by era.
type DifficultyConfig struct {
	Anchors []Anchor `yaml:"anchors"`
}

// DefaultAnchors returns the control points at eras 0, 3, 6 and 9.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{Era: 0, Params: DifficultyParams{
			EnemyCountMultiplier: 1.0, EnemyHPMultiplier: 1.0, EnemySpeedMultiplier: 1.0,
			ShootPercentage: 0.10, BossHP: 500,
		}},
		{Era: 3, Params: DifficultyParams{
			EnemyCountMultiplier: 1.3, EnemyHPMultiplier: 1.4, EnemySpeedMultiplier: 1.1,
			ShootPercentage: 0.25, BossHP: 900,
		}},
		{Era: 6, Params: DifficultyParams{
			EnemyCountMultiplier: 1.7, EnemyHPMultiplier: 1.9, EnemySpeedMultiplier: 1.25,
			ShootPercentage: 0.40, BossHP: 1400,
		}},
		{Era: 9, Params: DifficultyParams{
			EnemyCountMultiplier: 2.2, EnemyHPMultiplier: 2.6, EnemySpeedMultiplier: 1.4,
			ShootPercentage: 0.60, BossHP: 2000,
		}},
	}
}

// ParamsForEra interpolates the default anchors.
func ParamsForEra(era float64) DifficultyParams {
	return DifficultyConfig{Anchors: DefaultAnchors()}.Params(era)
}

// Params returns the interpolated parameters for an era. The era is clamped
// to [0, MaxEra]; each field is interpolated linearly and independently
// between the two bracketing anchors.
func (d DifficultyConfig) Params(era float64) DifficultyParams {
	anchors := d.Anchors
	if len(anchors) == 0 {
		anchors = DefaultAnchors()
	}

	era = clampF(era, 0, MaxEra)

	if era <= anchors[0].Era {
		return anchors[0].Params
	}
	last := anchors[len(anchors)-1]
	if era >= last.Era {
		return last.Params
	}

	lo, hi := anchors[0], last
	for i := 1; i < len(anchors); i++ {
		if era == anchors[i].Era {
			return anchors[i].Params
		}
		if era < anchors[i].Era {
			lo, hi = anchors[i-1], anchors[i]
			break
		}
	}

	t := 0.0
	if span := hi.Era - lo.Era; span > 0 {
		t = (era - lo.Era) / span
	}

	return DifficultyParams{
		EnemyCountMultiplier: lerp(lo.Params.EnemyCountMultiplier, hi.Params.EnemyCountMultiplier, t),
		EnemyHPMultiplier:    lerp(lo.Params.EnemyHPMultiplier, hi.Params.EnemyHPMultiplier, t),
		EnemySpeedMultiplier: lerp(lo.Params.EnemySpeedMultiplier, hi.Params.EnemySpeedMultiplier, t),
		ShootPercentage:      lerp(lo.Params.ShootPercentage, hi.Params.ShootPercentage, t),
		BossHP:               lerp(lo.Params.BossHP, hi.Params.BossHP, t),
	}
}

func (d DifficultyConfig) validate() error {
	if len(d.Anchors) == 0 {
		return errors.New("config: difficulty needs at least one anchor")
	}
	for i := 1; i < len(d.Anchors); i++ {
		if d.Anchors[i].Era < d.Anchors[i-1].Era {
			return fmt.Errorf("config: difficulty anchors out of order at index %d", i)
		}
	}
	return nil
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
