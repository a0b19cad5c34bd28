package generator

import (
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/rng"
)

// structureSpacing is the minimum column distance between two structures.
const structureSpacing = 4

// placeStructures fills destruction zones with destructible walls, crates
// and vault blocks.
//
// Walls are too tall to jump, so the only way through is to break them.
// They are stacked from segments, each its own structural group resting on
// the one below. Walls in heavy zones are built from materials the starting
// weapon cannot break but keep a soft door at the bottom, so every zone
// stays passable with the starting weapon. Heavy walls stop one row short
// of the ceiling: the open row above keeps their heavy tiles off the
// required path.
func (b *build) placeStructures(r *rng.RNG) {
	l := &b.lv.Layout
	heavyFrom, _ := b.band(heavyBandTo, 1)

	for _, z := range l.Zones {
		if z.Kind != level.ZoneDestruction {
			continue
		}

		cols := b.structureColumns(z)
		r.Shuffle(len(cols), func(i, j int) { cols[i], cols[j] = cols[j], cols[i] })

		var used []int
		fits := func(x, w int) bool {
			for c := x - 1; c <= x+w; c++ {
				if _, ok := b.groundSpot(c); !ok {
					return false
				}
				if b.surface[c] != b.surface[x] {
					return false
				}
			}
			for _, u := range used {
				if x+w-1 > u-structureSpacing && x < u+structureSpacing {
					return false
				}
			}
			return true
		}

		wallMaterial := func() level.Material {
			if !z.HeavyDestruction {
				if r.Bool(0.5) {
					return level.MaterialSoft
				}
				return level.MaterialMedium
			}
			if z.StartX >= heavyFrom && r.Bool(0.5) {
				return level.MaterialReinforced
			}
			return level.MaterialHard
		}

		walls := 1 + r.Intn(2)
		if b.lv.ID.Difficulty() >= 2 {
			walls++
		}
		for _, x := range cols {
			if walls == 0 {
				break
			}
			thick := 1
			if r.Bool(0.4) {
				thick = 2
			}
			if !fits(x, thick) {
				if thick == 1 || !fits(x, 1) {
					continue
				}
				thick = 1
			}
			b.wall(r, x, thick, z.HeavyDestruction, wallMaterial)
			used = append(used, x)
			walls--
		}

		if z.HeavyDestruction {
			vaults := 1 + r.Intn(2)
			for _, x := range cols {
				if vaults == 0 {
					break
				}
				w := r.Range(1, 3)
				if !fits(x, w) {
					continue
				}
				b.vault(r, x, w, r.Range(1, 3))
				used = append(used, x)
				vaults--
			}
			continue
		}

		crates := 1 + r.Intn(3)
		for _, x := range cols {
			if crates == 0 {
				break
			}
			if !fits(x, 1) {
				continue
			}
			m := level.MaterialSoft
			if r.Bool(0.3) {
				m = level.MaterialMedium
			}
			s := b.surface[x]
			l.SetDestructible(x, s-1, level.Destructible{Material: m, Group: b.newGroup()})
			b.feature[x] = true
			used = append(used, x)
			crates--
		}
	}
}

// structureColumns lists interior columns of z with clear ground footing,
// left to right.
func (b *build) structureColumns(z level.Zone) []int {
	var cols []int
	for x := z.StartX + edgeMargin; x < z.EndX-edgeMargin; x++ {
		if b.feature[x] {
			continue
		}
		if _, ok := b.groundSpot(x); ok {
			cols = append(cols, x)
		}
	}
	return cols
}

// wall raises a wall thick columns wide starting at column x. Soft walls
// reach the ceiling; heavy walls leave the top row open.
func (b *build) wall(r *rng.RNG, x, thick int, heavy bool, material func() level.Material) {
	l := &b.lv.Layout
	s := b.surface[x]
	bottom := s
	ceiling := 0

	if heavy {
		door := b.newGroup()
		for dx := 0; dx < thick; dx++ {
			for y := s - 2; y < s; y++ {
				l.SetDestructible(x+dx, y, level.Destructible{
					Material:    level.MaterialSoft,
					Group:       door,
					LoadBearing: true,
				})
			}
		}
		bottom = s - 2
		ceiling = 1
	}

	for y := bottom; y > ceiling; {
		top := max(ceiling, y-r.Range(3, 5))
		g := b.newGroup()
		m := material()
		for dx := 0; dx < thick; dx++ {
			for yy := top; yy < y; yy++ {
				l.SetDestructible(x+dx, yy, level.Destructible{
					Material:    m,
					Group:       g,
					LoadBearing: top > ceiling,
				})
			}
		}
		y = top
	}

	for dx := 0; dx < thick; dx++ {
		b.feature[x+dx] = true
	}
}

var vaultMaterials = []level.Material{level.MaterialHard, level.MaterialReinforced, level.MaterialIndestructible}
var vaultWeights = []float64{0.45, 0.35, 0.2}

// vault places a block of heavy material on the ground. Blocks are low
// enough to jump over; their tops hold treasure.
func (b *build) vault(r *rng.RNG, x, w, h int) {
	l := &b.lv.Layout
	s := b.surface[x]
	m := vaultMaterials[r.WeightedChoice(vaultWeights)]

	base := b.newGroup()
	for dx := 0; dx < w; dx++ {
		l.SetDestructible(x+dx, s-1, level.Destructible{Material: m, Group: base, LoadBearing: h > 1})
	}
	if h > 1 {
		lid := b.newGroup()
		for dx := 0; dx < w; dx++ {
			l.SetDestructible(x+dx, s-2, level.Destructible{Material: m, Group: lid})
		}
	}
	for dx := 0; dx < w; dx++ {
		b.feature[x+dx] = true
		b.vaultTops = append(b.vaultTops, level.P(x+dx, s-h-1))
	}
}
