// Package render draws an ASCII preview of a generated level.
//
// The preview has a header line, a zone ruler, the tile grid with entities
// drawn over it, and an optional legend. Plain returns bare text; Styled
// colors the same text with lipgloss.
package render

import (
	"fmt"

	"github.com/vovakirdan/levelforge/internal/level"
)

// Options selects what part of the level to draw.
type Options struct {
	// From is the first column drawn.
	From int
	// Width limits the number of columns drawn. Zero draws to the end.
	Width int
	// Legend appends a glyph legend below the grid.
	Legend bool
}

// Legend lines, in display order.
var legend = []string{
	"# ground  ^ hazard  = platform  s/m/h/r/X soft/medium/hard/reinforced/indestructible",
	"S start  G goal  C checkpoint  w/W medium/heavy weapon  o/+/a/$ coin/health/ammo/treasure",
	"e/c/f/g patrol/chaser/flyer/gunner  B boss",
	"ruler: I intro  K combat  D destruction  H heavy destruction  P platforming  - buffer  B boss  G goal",
}

const headerRows = 2 // Header line plus zone ruler

// Plain renders lv as text.
func Plain(lv *level.Level, opts Options) string {
	return draw(lv, opts).String()
}

// Styled renders lv with theme colors.
func Styled(lv *level.Level, opts Options, theme Theme) string {
	return draw(lv, opts).styled(theme)
}

// window clamps the requested column range to the level.
func window(l *level.Layout, opts Options) (from, width int) {
	from = max(0, min(opts.From, l.Width))
	width = l.Width - from
	if opts.Width > 0 {
		width = min(width, opts.Width)
	}
	return from, width
}

func draw(lv *level.Level, opts Options) *canvas {
	l := &lv.Layout
	from, width := window(l, opts)

	rows := headerRows + l.Height
	if opts.Legend {
		rows += len(legend)
	}
	header := fmt.Sprintf("%s  %dx%d  cols %d-%d  hash %016X",
		lv.ID, l.Width, l.Height, from, from+width-1, lv.Hash)
	c := newCanvas(max(width, len(header), longest(legend)), rows)

	c.drawText(0, 0, header, inkDefault)

	for i := 0; i < width; i++ {
		if z, ok := l.ZoneAt(from + i); ok {
			c.set(i, 1, zoneGlyph(z), inkRuler)
		}
	}

	plot := func(p level.Point, r rune, k ink) {
		if p.X < from || p.X >= from+width || !l.InBounds(p.X, p.Y) {
			return
		}
		c.set(p.X-from, headerRows+p.Y, r, k)
	}

	for y := 0; y < l.Height; y++ {
		for i := 0; i < width; i++ {
			r, k := tileGlyph(l, from+i, y)
			c.set(i, headerRows+y, r, k)
		}
	}

	// Later layers draw over earlier ones.
	for _, cp := range lv.Checkpoints {
		plot(cp.Pos, 'C', inkCheckpoint)
	}
	for _, r := range lv.Rewards {
		plot(r.Pos, rewardGlyph(r.Kind), inkReward)
	}
	for _, w := range lv.WeaponDrops {
		g := 'w'
		if w.Tier == level.TierHeavy {
			g = 'W'
		}
		plot(w.Pos, g, inkWeapon)
	}
	for _, e := range lv.Enemies {
		g, k := enemyGlyph(e.Behavior)
		plot(e.Pos, g, k)
	}
	plot(l.Start, 'S', inkEndpoint)
	plot(l.Goal, 'G', inkEndpoint)

	if opts.Legend {
		for i, line := range legend {
			c.drawText(0, headerRows+l.Height+i, line, inkDefault)
		}
	}
	return c
}

func longest(lines []string) int {
	n := 0
	for _, s := range lines {
		n = max(n, len(s))
	}
	return n
}

func tileGlyph(l *level.Layout, x, y int) (rune, ink) {
	switch l.At(x, y) {
	case level.CollisionSolid:
		return '#', inkGround
	case level.CollisionHazard:
		return '^', inkHazard
	case level.CollisionPlatform:
		return '=', inkPlatform
	case level.CollisionDestructible:
		d, _ := l.DestructibleAt(x, y)
		return materialGlyph(d.Material)
	default:
		return '.', inkAir
	}
}

func materialGlyph(m level.Material) (rune, ink) {
	switch m {
	case level.MaterialSoft:
		return 's', inkSoft
	case level.MaterialMedium:
		return 'm', inkMedium
	case level.MaterialHard:
		return 'h', inkHard
	case level.MaterialReinforced:
		return 'r', inkReinforced
	case level.MaterialIndestructible:
		return 'X', inkIndestructible
	default:
		return '?', inkDefault
	}
}

func zoneGlyph(z level.Zone) rune {
	switch z.Kind {
	case level.ZoneIntro:
		return 'I'
	case level.ZoneCombat:
		return 'K'
	case level.ZoneDestruction:
		if z.HeavyDestruction {
			return 'H'
		}
		return 'D'
	case level.ZonePlatforming:
		return 'P'
	case level.ZoneBuffer:
		return '-'
	case level.ZoneBoss:
		return 'B'
	case level.ZoneGoal:
		return 'G'
	default:
		return '?'
	}
}

func rewardGlyph(k level.RewardKind) rune {
	switch k {
	case level.RewardHealth:
		return '+'
	case level.RewardAmmo:
		return 'a'
	case level.RewardTreasure:
		return '$'
	default:
		return 'o'
	}
}

func enemyGlyph(b level.Behavior) (rune, ink) {
	switch b {
	case level.BehaviorChaser:
		return 'c', inkEnemy
	case level.BehaviorFlyer:
		return 'f', inkEnemy
	case level.BehaviorShooter:
		return 'g', inkEnemy
	case level.BehaviorBoss:
		return 'B', inkBoss
	default:
		return 'e', inkEnemy
	}
}
