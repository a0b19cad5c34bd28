package generator

import (
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/rng"
)

// edgeMargin is the number of plain columns kept at each zone edge so that
// zones always begin and end on open ground.
const edgeMargin = 3

// Weapon drop bands as fractions of the level width. Structures that need
// an upgraded weapon only appear past the end of the matching band.
const (
	mediumBandFrom = 0.30
	mediumBandTo   = 0.40
	heavyBandFrom  = 0.60
	heavyBandTo    = 0.75
)

var bodyKinds = []level.ZoneKind{level.ZoneCombat, level.ZoneDestruction, level.ZonePlatforming}
var bodyWeights = []float64{0.4, 0.35, 0.25}

// planZones partitions the width into Intro, body zones separated by
// buffers, a boss arena and the goal.
func (b *build) planZones(r *rng.RNG) {
	lc := b.cfg.Layout
	l := &b.lv.Layout

	zones := []level.Zone{{Kind: level.ZoneIntro, StartX: 0, EndX: lc.IntroWidth}}
	x := lc.IntroWidth
	bodyEnd := l.Width - lc.GoalWidth - lc.MinZoneWidth

	for bodyEnd-x >= lc.MinZoneWidth+lc.BufferWidth {
		zw := r.Range(lc.MinZoneWidth, lc.MaxZoneWidth+1)
		if x+zw+lc.BufferWidth > bodyEnd {
			zw = bodyEnd - x - lc.BufferWidth
		}
		kind := bodyKinds[r.WeightedChoice(bodyWeights)]
		zones = append(zones, level.Zone{Kind: kind, StartX: x, EndX: x + zw})
		x += zw
		if lc.BufferWidth > 0 {
			zones = append(zones, level.Zone{Kind: level.ZoneBuffer, StartX: x, EndX: x + lc.BufferWidth})
			x += lc.BufferWidth
		}
	}

	// The boss arena absorbs whatever the body loop left over.
	zones = append(zones,
		level.Zone{Kind: level.ZoneBoss, StartX: x, EndX: l.Width - lc.GoalWidth},
		level.Zone{Kind: level.ZoneGoal, StartX: l.Width - lc.GoalWidth, EndX: l.Width},
	)

	ensureDestruction(zones)

	hardFrom, _ := b.band(mediumBandTo, 1)
	heavyChance := 0.5 + 0.1*float64(b.lv.ID.Difficulty())
	for i := range zones {
		z := &zones[i]
		if z.Kind == level.ZoneDestruction && z.StartX >= hardFrom {
			z.HeavyDestruction = r.Bool(heavyChance)
		}
	}

	l.Zones = zones
}

// ensureDestruction converts the last body zone into a destruction zone
// when none was drawn.
func ensureDestruction(zones []level.Zone) {
	last := -1
	for i, z := range zones {
		switch z.Kind {
		case level.ZoneDestruction:
			return
		case level.ZoneCombat, level.ZonePlatforming:
			last = i
		}
	}
	if last >= 0 {
		zones[last].Kind = level.ZoneDestruction
	}
}

func (b *build) interior(z level.Zone, x int) bool {
	return x >= z.StartX+edgeMargin && x < z.EndX-edgeMargin
}

type terrainFeature int

const (
	featureStep terrainFeature = iota
	featureGap
	featureHazard
)

// featureMix returns the per-column chance of starting a terrain feature
// in a zone and the relative weights of step, gap and hazard strip.
func featureMix(k level.ZoneKind) (chance float64, weights []float64) {
	switch k {
	case level.ZoneCombat:
		return 0.22, []float64{0.45, 0.2, 0.35}
	case level.ZoneDestruction:
		return 0.10, []float64{0.6, 0.4, 0}
	case level.ZonePlatforming:
		return 0.28, []float64{0.3, 0.55, 0.15}
	default:
		return 0, nil
	}
}

// carveTerrain fills the ground column by column. Surface steps are at
// most two rows, gaps never exceed the configured maximum and every
// feature is followed by plain ground.
func (b *build) carveTerrain(r *rng.RNG) {
	l := &b.lv.Layout
	lc := b.cfg.Layout

	top, bottom := l.Height-7, l.Height-3
	s := l.Height - 4
	boost := 1 + 0.15*float64(b.lv.ID.Difficulty())
	minGap := min(2, lc.MaxGapWidth)

	cooldown, gapLeft, hazardLeft := 0, 0, 0
	for x := 0; x < l.Width; x++ {
		z, _ := l.ZoneAt(x)
		if cooldown == 0 && b.interior(z, x) {
			chance, weights := featureMix(z.Kind)
			if chance > 0 && r.Bool(chance*boost) {
				switch terrainFeature(r.WeightedChoice(weights)) {
				case featureStep:
					s = clampInt(s+stepDelta(r), top, bottom)
					cooldown = 4
				case featureGap:
					n := r.Range(minGap, lc.MaxGapWidth+1)
					if n > 0 && b.interior(z, x+n-1) {
						gapLeft = n
						cooldown = n + 4
					}
				case featureHazard:
					n := r.Range(1, 3)
					if b.interior(z, x+n-1) {
						hazardLeft = n
						cooldown = n + 4
					}
				}
			}
		}

		if gapLeft > 0 {
			b.surface[x] = l.Height
			b.feature[x] = true
			l.Set(x, l.Height-1, level.CollisionHazard)
			gapLeft--
		} else {
			b.surface[x] = s
			for y := s; y < l.Height; y++ {
				l.Set(x, y, level.CollisionSolid)
			}
			if hazardLeft > 0 {
				l.Set(x, s, level.CollisionHazard)
				b.feature[x] = true
				hazardLeft--
			}
		}

		if cooldown > 0 {
			cooldown--
		}
	}
}

func stepDelta(r *rng.RNG) int {
	d := r.Range(1, 3)
	if r.Bool(0.5) {
		return -d
	}
	return d
}

// placePlatforms adds passthrough platforms: over some gaps and floating
// in platforming zones, and a pair of ledges in the boss arena.
func (b *build) placePlatforms(r *rng.RNG) {
	l := &b.lv.Layout
	for _, z := range l.Zones {
		switch z.Kind {
		case level.ZonePlatforming:
			for _, run := range b.gapRuns(z) {
				if r.Bool(0.5) {
					b.platform(z, run.Start-1, run.Length+2, 3)
				}
			}
			n := r.Range(2, 5)
			for i := 0; i < n; i++ {
				x := r.Range(z.StartX+edgeMargin, z.EndX-edgeMargin)
				b.platform(z, x, r.Range(2, 5), r.Range(3, 5))
			}
		case level.ZoneBoss:
			third := z.Width() / 3
			b.platform(z, z.StartX+third-1, 3, 3)
			b.platform(z, z.EndX-third-2, 3, 3)
		}
	}
}

// gapRuns returns the gap column runs carved inside z.
func (b *build) gapRuns(z level.Zone) []level.Run {
	var runs []level.Run
	h := b.lv.Layout.Height
	for x := z.StartX; x < z.EndX; x++ {
		if b.surface[x] != h {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].Start+runs[n-1].Length == x {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, level.Run{Start: x, Length: 1})
	}
	return runs
}

// platform lays a platform of the given length lift rows above the lowest
// solid ground it spans, clipped to the zone interior.
func (b *build) platform(z level.Zone, x0, length, lift int) {
	l := &b.lv.Layout
	from := max(x0, z.StartX+edgeMargin)
	to := min(x0+length, z.EndX-edgeMargin)

	ground := l.Height
	for x := from; x < to; x++ {
		ground = min(ground, b.surface[x])
	}
	row := ground - lift
	if ground >= l.Height || row < 2 {
		return
	}

	for x := from; x < to; x++ {
		if l.At(x, row) != level.CollisionNone || l.At(x, row-1) != level.CollisionNone {
			continue
		}
		l.Set(x, row, level.CollisionPlatform)
		b.perches = append(b.perches, level.P(x, row-1))
	}
}

// placeEndpoints puts the start near the left edge of the intro and the
// goal near the right edge of the goal zone.
func (b *build) placeEndpoints() {
	l := &b.lv.Layout
	if p, ok := b.groundSpot(2); ok {
		l.Start = p
	} else {
		l.Start = level.P(2, b.surface[2]-1)
	}
	if p, ok := b.groundSpot(l.Width - 3); ok {
		l.Goal = p
	} else {
		l.Goal = level.P(l.Width-3, b.surface[l.Width-3]-1)
	}
	b.take(l.Start)
	b.take(l.Goal)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
