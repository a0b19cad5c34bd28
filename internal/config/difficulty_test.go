package config

import (
	"math"
	"testing"
)

func fields(p DifficultyParams) []float64 {
	return []float64{
		p.EnemyCountMultiplier,
		p.EnemyHPMultiplier,
		p.EnemySpeedMultiplier,
		p.ShootPercentage,
		p.BossHP,
	}
}

func TestParamsAtAnchors(t *testing.T) {
	for _, a := range DefaultAnchors() {
		got := ParamsForEra(a.Era)
		if got != a.Params {
			t.Errorf("era %.0f: got %+v, expected %+v", a.Era, got, a.Params)
		}
	}
}

func TestParamsMidpoint(t *testing.T) {
	got := ParamsForEra(1.5)
	if math.Abs(got.EnemyCountMultiplier-1.15) > 1e-9 {
		t.Errorf("EnemyCountMultiplier = %f, expected 1.15", got.EnemyCountMultiplier)
	}
	if math.Abs(got.BossHP-700) > 1e-9 {
		t.Errorf("BossHP = %f, expected 700", got.BossHP)
	}
}

func TestParamsClamp(t *testing.T) {
	if got, want := ParamsForEra(-3), ParamsForEra(0); got != want {
		t.Errorf("negative era not clamped: %+v", got)
	}
	if got, want := ParamsForEra(42), ParamsForEra(9); got != want {
		t.Errorf("large era not clamped: %+v", got)
	}
}

func TestAnchorsMonotonic(t *testing.T) {
	anchors := DefaultAnchors()
	for i := 1; i < len(anchors); i++ {
		prev := fields(anchors[i-1].Params)
		cur := fields(anchors[i].Params)
		for f := range cur {
			if cur[f] < prev[f] {
				t.Errorf("field %d decreases between anchors %d and %d", f, i-1, i)
			}
		}
	}
}

func TestParamsMonotonicAcrossEras(t *testing.T) {
	prev := fields(ParamsForEra(0))
	for era := 0.25; era <= MaxEra; era += 0.25 {
		cur := fields(ParamsForEra(era))
		for f := range cur {
			if cur[f] < prev[f]-1e-12 {
				t.Fatalf("field %d decreases at era %.2f", f, era)
			}
		}
		prev = cur
	}
}

func TestCoincidentAnchors(t *testing.T) {
	d := DifficultyConfig{Anchors: []Anchor{
		{Era: 0, Params: DifficultyParams{BossHP: 100}},
		{Era: 4, Params: DifficultyParams{BossHP: 200}},
		{Era: 4, Params: DifficultyParams{BossHP: 300}},
		{Era: 9, Params: DifficultyParams{BossHP: 400}},
	}}

	got := d.Params(4)
	if math.IsNaN(got.BossHP) {
		t.Fatal("coincident anchors produced NaN")
	}
	if got.BossHP != 200 {
		t.Errorf("BossHP = %f, expected 200", got.BossHP)
	}
}
