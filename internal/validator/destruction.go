package validator

import (
	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
)

// zonePaths counts the entry rows on the left edge of z from which a
// player holding tier can sweep through to the right edge. Tiles the tier
// breaks count as open.
func zonePaths(l *level.Layout, z level.Zone, tier level.WeaponTier, phys config.PhysicsConfig) int {
	first := max(0, z.StartX)
	last := min(l.Width, z.EndX) - 1
	if first > last {
		return 0
	}

	count := 0
	for y := 0; y < l.Height; y++ {
		if standable(l, first, y, tier) && sweep(l, first, last, y, tier, phys) {
			count++
		}
	}
	return count
}

// sweep propagates reachable standing rows column by column, left to
// right, starting from row entry in column first. It reports whether any
// row in column last is reached.
func sweep(l *level.Layout, first, last, entry int, tier level.WeaponTier, phys config.PhysicsConfig) bool {
	width := last - first + 1
	reach := make([][]bool, width)
	reach[0] = make([]bool, l.Height)
	reach[0][entry] = true

	for i := 0; i < width-1; i++ {
		if reach[i] == nil {
			continue
		}
		x := first + i
		for y, ok := range reach[i] {
			if !ok {
				continue
			}
			for dx := 1; dx <= phys.MaxJumpDistance && i+dx < width; dx++ {
				nx := x + dx
				for ny := 0; ny < l.Height; ny++ {
					if reach[i+dx] != nil && reach[i+dx][ny] {
						continue
					}
					if !standable(l, nx, ny, tier) || !arc(l, x, y, nx, ny, tier, phys.MaxJumpHeight) {
						continue
					}
					if reach[i+dx] == nil {
						reach[i+dx] = make([]bool, l.Height)
					}
					reach[i+dx][ny] = true
				}
			}
		}
	}
	return reach[width-1] != nil
}

// arc reports whether a jump from (x, y) to (nx, ny) clears everything in
// between. The jump rises to some row h at most jumpHeight above y and at
// or above both endpoints, crosses at h, then drops onto the target.
func arc(l *level.Layout, x, y, nx, ny int, tier level.WeaponTier, jumpHeight int) bool {
	top := max(0, y-jumpHeight)
	for h := min(y, ny); h >= top; h-- {
		if !openColumn(l, x, h, y, tier) {
			// Anything blocking the rise at h also blocks every higher row.
			return false
		}
		if openColumn(l, nx, h, ny, tier) && openRow(l, x+1, nx-1, h, tier) {
			return true
		}
	}
	return false
}

// openColumn reports whether rows [from, to] of column x are passable.
func openColumn(l *level.Layout, x, from, to int, tier level.WeaponTier) bool {
	for y := from; y <= to; y++ {
		if !passable(l, x, y, tier) {
			return false
		}
	}
	return true
}

// openRow reports whether columns [from, to] of row y are passable.
func openRow(l *level.Layout, from, to, y int, tier level.WeaponTier) bool {
	for x := from; x <= to; x++ {
		if !passable(l, x, y, tier) {
			return false
		}
	}
	return true
}
