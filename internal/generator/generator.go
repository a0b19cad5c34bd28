// Package generator builds complete levels from a level identifier.
//
// Generation is a pure function of the identifier and the configuration:
// the same inputs always yield a byte-identical artifact with the same
// content hash. Each placement phase draws from its own forked RNG stream,
// so retuning one phase does not shift the output of the others.
package generator

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/rng"
)

// Generator produces levels. It holds no per-level state and is safe for
// concurrent use.
type Generator struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a generator. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Dimensions returns the layout size for a difficulty and era.
func Dimensions(l config.LayoutConfig, difficulty, era int) (width, height int) {
	width = l.BaseWidth + difficulty*l.WidthPerDifficulty + era*l.WidthPerEra
	height = l.BaseHeight + difficulty*l.HeightPerDifficulty
	return width, height
}

// streams holds one RNG per placement phase.
type streams struct {
	layout       *rng.RNG
	destructible *rng.RNG
	checkpoints  *rng.RNG
	weapons      *rng.RNG
	rewards      *rng.RNG
	enemies      *rng.RNG
}

// forkStreams derives the phase streams from the root seed. The fork
// order is fixed; appending a new phase at the end keeps existing
// streams stable.
func forkStreams(seed uint64) streams {
	root := rng.New(seed)
	return streams{
		layout:       root.Fork(),
		destructible: root.Fork(),
		checkpoints:  root.Fork(),
		weapons:      root.Fork(),
		rewards:      root.Fork(),
		enemies:      root.Fork(),
	}
}

// Generate builds the level for id. It never fails for a well-formed
// identifier; a level that later fails validation is a normal outcome.
func (g *Generator) Generate(id levelid.ID) *level.Level {
	w, h := Dimensions(g.cfg.Layout, id.Difficulty(), id.Era())
	s := forkStreams(id.Seed())

	b := newBuild(g.cfg, id, w, h)
	b.lv.Metadata.Params = g.cfg.Difficulty.Params(float64(id.Era()))
	b.params = b.lv.Metadata.Params

	b.planZones(s.layout)
	b.carveTerrain(s.layout)
	b.placePlatforms(s.layout)
	b.placeEndpoints()
	g.logger.Debug("layout built", "id", id, "width", w, "height", h, "zones", len(b.lv.Layout.Zones))

	b.placeStructures(s.destructible)
	g.logger.Debug("structures placed", "id", id, "destructibles", len(b.lv.Layout.Destructibles))

	b.placeCheckpoints(s.checkpoints)
	b.placeWeapons(s.weapons)
	b.placeRewards(s.rewards)
	score := b.placeEnemies(s.enemies)
	g.logger.Debug("entities placed", "id", id,
		"enemies", len(b.lv.Enemies),
		"weapons", len(b.lv.WeaponDrops),
		"rewards", len(b.lv.Rewards),
		"checkpoints", len(b.lv.Checkpoints),
		"score", score,
	)

	b.lv.Seal()
	return b.lv
}

// build is the mutable working state of one generation.
type build struct {
	cfg    config.Config
	params config.DifficultyParams
	lv     *level.Level

	// surface is the row of the topmost ground tile per column, or the
	// layout height for gap columns.
	surface []int
	// feature marks columns carrying a gap, a hazard strip or a structure.
	feature []bool
	// perches are standing spots on top of platforms and blocks.
	perches []level.Point
	// vaultTops are standing spots on top of heavy-material blocks.
	vaultTops []level.Point
	taken     map[level.Point]bool

	nextGroup level.GroupID
}

func newBuild(cfg config.Config, id levelid.ID, w, h int) *build {
	b := &build{
		cfg: cfg,
		lv: &level.Level{
			ID:     id,
			Layout: level.NewLayout(w, h),
		},
		surface: make([]int, w),
		feature: make([]bool, w),
		taken:   make(map[level.Point]bool),
	}
	return b
}

// groundSpot returns the standing spot on the ground surface of column x,
// if that column has clear, solid footing.
func (b *build) groundSpot(x int) (level.Point, bool) {
	l := &b.lv.Layout
	if x < 0 || x >= l.Width {
		return level.Point{}, false
	}
	s := b.surface[x]
	if s <= 0 || s >= l.Height {
		return level.Point{}, false
	}
	if l.At(x, s) != level.CollisionSolid || l.At(x, s-1) != level.CollisionNone {
		return level.Point{}, false
	}
	return level.P(x, s-1), true
}

// freeSpot is groundSpot restricted to spots no entity occupies yet.
func (b *build) freeSpot(x int) (level.Point, bool) {
	p, ok := b.groundSpot(x)
	if !ok || b.taken[p] {
		return level.Point{}, false
	}
	return p, true
}

// nearestFreeSpot searches outward from x within [lo, hi).
func (b *build) nearestFreeSpot(x, lo, hi int) (level.Point, bool) {
	for d := 0; d < hi-lo; d++ {
		for _, c := range [2]int{x - d, x + d} {
			if c < lo || c >= hi {
				continue
			}
			if p, ok := b.freeSpot(c); ok {
				return p, true
			}
		}
	}
	return level.Point{}, false
}

func (b *build) take(p level.Point) {
	b.taken[p] = true
}

func (b *build) newGroup() level.GroupID {
	b.nextGroup++
	return b.nextGroup
}

// band returns the column range [lo, hi) covering the given fractions of
// the level width.
func (b *build) band(from, to float64) (lo, hi int) {
	w := float64(b.lv.Layout.Width)
	return int(w * from), int(w * to)
}
