package validator

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
)

// columns buckets the standable rows of a layout by column.
type columns [][]int

// standableColumns collects every tile the starting weapon can stand on.
func standableColumns(l *level.Layout) columns {
	cols := make(columns, l.Width)
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if standable(l, x, y, level.TierStarting) {
				cols[x] = append(cols[x], y)
			}
		}
	}
	return cols
}

// resolve returns p when it is standable, otherwise the nearest standable
// tile within radius. Ties go to the upper, then the left tile.
func resolve(l *level.Layout, p level.Point, radius int) (level.Point, bool) {
	if standable(l, p.X, p.Y, level.TierStarting) {
		return p, true
	}
	best, bestDist, found := level.Point{}, 0, false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := p.X+dx, p.Y+dy
			if !standable(l, x, y, level.TierStarting) {
				continue
			}
			d := dx*dx + dy*dy
			if !found || d < bestDist {
				best, bestDist, found = level.P(x, y), d, true
			}
		}
	}
	return best, found
}

// reachable runs a breadth-first search from start to goal over standable
// tiles. Tiles connect when they are at most MaxJumpDistance columns apart
// and the move climbs no more than MaxJumpHeight rows; falls are unbounded.
func reachable(l *level.Layout, phys config.PhysicsConfig) bool {
	if l.Start == l.Goal {
		return true
	}
	start, ok := resolve(l, l.Start, phys.StandableSearchRadius)
	if !ok {
		return false
	}
	goal, ok := resolve(l, l.Goal, phys.StandableSearchRadius)
	if !ok {
		return false
	}
	if start == goal {
		return true
	}

	cols := standableColumns(l)
	visited := mapset.New[level.Point]()
	q := queue.New[level.Point]()

	visited.Put(start)
	q.Enqueue(start)
	for !q.Empty() {
		cur := q.Dequeue()
		if cur == goal {
			return true
		}
		lo := max(0, cur.X-phys.MaxJumpDistance)
		hi := min(l.Width-1, cur.X+phys.MaxJumpDistance)
		for x := lo; x <= hi; x++ {
			for _, y := range cols[x] {
				if cur.Y-y > phys.MaxJumpHeight {
					continue
				}
				next := level.P(x, y)
				if visited.Has(next) {
					continue
				}
				visited.Put(next)
				q.Enqueue(next)
			}
		}
	}
	return false
}
