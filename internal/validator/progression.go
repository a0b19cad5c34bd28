package validator

import (
	"sort"

	"github.com/vovakirdan/levelforge/internal/level"
)

// weaponProgression walks the primary path from left to right, picking up
// on-path weapon drops, and reports the first column whose required
// destructible the held weapon cannot break.
//
// A column is on the required path when it holds destructibles and no
// tile in it can be stood on without breaking something. Every
// destructible in such a column is required. Detours through neighboring
// columns are not considered.
func weaponProgression(lv *level.Level) (x int, blocker level.Material, held level.WeaponTier, ok bool) {
	l := &lv.Layout

	var drops []level.WeaponDrop
	for _, w := range lv.WeaponDrops {
		if w.OnPrimaryPath {
			drops = append(drops, w)
		}
	}
	sort.SliceStable(drops, func(i, j int) bool { return drops[i].Pos.X < drops[j].Pos.X })

	lo := max(0, min(l.Start.X, l.Goal.X))
	hi := min(l.Width-1, max(l.Start.X, l.Goal.X))

	held = level.TierStarting
	next := 0
	for x := lo; x <= hi; x++ {
		for next < len(drops) && drops[next].Pos.X <= x {
			held = max(held, drops[next].Tier)
			next++
		}
		if !requiredColumn(l, x) {
			continue
		}
		for y := 0; y < l.Height; y++ {
			d, isDestructible := l.DestructibleAt(x, y)
			if !isDestructible {
				continue
			}
			if !held.CanBreak(d.Material) {
				return x, d.Material, held, false
			}
		}
	}
	return 0, level.MaterialNone, held, true
}

// requiredColumn reports whether column x holds destructibles and offers
// no clear standing spot that bypasses them.
func requiredColumn(l *level.Layout, x int) bool {
	hasDestructible := false
	for y := 0; y < l.Height; y++ {
		if clearStandable(l, x, y) {
			return false
		}
		if l.At(x, y) == level.CollisionDestructible {
			hasDestructible = true
		}
	}
	return hasDestructible
}
