package level

import "github.com/vovakirdan/levelforge/internal/config"

// Run is a contiguous span of columns [Start, Start+Length).
type Run struct {
	Start  int
	Length int
}

// GapRuns returns every contiguous run of columns that contain no
// ground-type tile at all, left to right.
func (l *Layout) GapRuns() []Run {
	var runs []Run
	start := -1
	for x := 0; x < l.Width; x++ {
		if l.ColumnHasGround(x) {
			if start >= 0 {
				runs = append(runs, Run{Start: start, Length: x - start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = x
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, Length: l.Width - start})
	}
	return runs
}

// Breakdown holds the five components of the difficulty score and their
// weighted sum.
type Breakdown struct {
	EnemyLoad          float64 // Enemy weight per 100 columns
	GapDifficulty      float64 // Squared gap widths per 100 columns, scaled
	HazardDensity      float64 // Hazard tiles per 1000 tiles
	RewardScarcity     float64 // Enemy-to-reward ratio, capped
	MaterialDifficulty float64 // Material severity per 100 tiles

	Composite float64
}

// Score computes the difficulty breakdown of a level.
func Score(lv *Level, s config.ScoringConfig) Breakdown {
	total := 0.0
	for _, e := range lv.Enemies {
		total += e.Weight
	}

	b := Breakdown{
		EnemyLoad:          EnemyLoad(total, lv.Layout.Width),
		GapDifficulty:      GapDifficulty(&lv.Layout, s.GapScale),
		HazardDensity:      HazardDensity(&lv.Layout),
		RewardScarcity:     RewardScarcity(len(lv.Enemies), len(lv.Rewards), s.ScarcityCap),
		MaterialDifficulty: MaterialDifficulty(&lv.Layout),
	}
	b.Composite = b.Weighted(s)
	return b
}

// Weighted returns the weighted sum of the components.
func (b Breakdown) Weighted(s config.ScoringConfig) float64 {
	return s.EnemyWeight*b.EnemyLoad +
		s.GapWeight*b.GapDifficulty +
		s.HazardWeight*b.HazardDensity +
		s.ScarcityWeight*b.RewardScarcity +
		s.MaterialWeight*b.MaterialDifficulty
}

// widthScale normalizes per-column quantities to a 100-column level.
func widthScale(width int) float64 {
	if width <= 0 {
		return 1
	}
	return float64(width) / 100
}

// EnemyLoad normalizes total enemy weight by level width.
func EnemyLoad(totalWeight float64, width int) float64 {
	return totalWeight / widthScale(width)
}

// GapDifficulty sums squared gap widths, scaled and normalized by width.
func GapDifficulty(l *Layout, scale float64) float64 {
	sum := 0
	for _, r := range l.GapRuns() {
		sum += r.Length * r.Length
	}
	return float64(sum) * scale / widthScale(l.Width)
}

// HazardDensity returns hazard tiles per 1000 tiles.
func HazardDensity(l *Layout) float64 {
	n := len(l.Tiles)
	if n == 0 {
		return 0
	}
	return float64(l.CountTiles(CollisionHazard)) * 1000 / float64(n)
}

// RewardScarcity returns enemies per reward, capped. A level with enemies
// and no rewards is maximally scarce.
func RewardScarcity(enemies, rewards int, limit float64) float64 {
	if enemies == 0 {
		return 0
	}
	if rewards == 0 {
		return limit
	}
	return min(float64(enemies)/float64(rewards), limit)
}

// MaterialDifficulty returns summed material severity per 100 tiles.
func MaterialDifficulty(l *Layout) float64 {
	n := len(l.Tiles)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, idx := range l.DestructibleIndices() {
		if l.Tiles[idx] == CollisionDestructible {
			sum += l.Destructibles[idx].Material.Severity()
		}
	}
	return sum * 100 / float64(n)
}
