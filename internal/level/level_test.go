package level

import (
	"math"
	"testing"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/levelid"
)

// flatLevel builds a w×h level with a solid floor on the bottom row.
func flatLevel(w, h int) *Level {
	lv := &Level{
		ID:     levelid.MustNew(1, 0, 0, 42),
		Layout: NewLayout(w, h),
	}
	for x := 0; x < w; x++ {
		lv.Layout.Set(x, h-1, CollisionSolid)
	}
	lv.Layout.Start = P(0, h-2)
	lv.Layout.Goal = P(w-1, h-2)
	lv.Layout.Zones = []Zone{{Kind: ZoneIntro, StartX: 0, EndX: w}}
	return lv
}

func TestLayoutAccessors(t *testing.T) {
	l := NewLayout(10, 5)
	if len(l.Tiles) != 50 {
		t.Fatalf("tiles = %d, want 50", len(l.Tiles))
	}

	l.Set(3, 4, CollisionSolid)
	if l.At(3, 4) != CollisionSolid {
		t.Errorf("At(3,4) = %v, want Solid", l.At(3, 4))
	}
	if l.At(-1, 0) != CollisionNone || l.At(10, 0) != CollisionNone || l.At(0, 5) != CollisionNone {
		t.Error("out-of-bounds reads should be None")
	}

	l.Set(20, 20, CollisionSolid) // Ignored
	if got := l.CountTiles(CollisionSolid); got != 1 {
		t.Errorf("CountTiles(Solid) = %d, want 1", got)
	}

	if p := l.Point(l.Index(7, 2)); p != P(7, 2) {
		t.Errorf("Point(Index(7,2)) = %v", p)
	}
	if P(4, 1).Below() != P(4, 2) {
		t.Error("Below should increase Y")
	}
}

func TestLayoutDestructibles(t *testing.T) {
	l := NewLayout(6, 6)
	l.SetDestructible(2, 3, Destructible{Material: MaterialHard, Group: 7, LoadBearing: true})

	d, ok := l.DestructibleAt(2, 3)
	if !ok || d.Material != MaterialHard || d.Group != 7 || !d.LoadBearing {
		t.Fatalf("DestructibleAt = %+v, %v", d, ok)
	}
	if _, ok := l.DestructibleAt(0, 0); ok {
		t.Error("empty tile should not be destructible")
	}

	// A destructible tile with no table entry reads as MaterialNone.
	l.Set(4, 4, CollisionDestructible)
	d, ok = l.DestructibleAt(4, 4)
	if !ok || d.Material != MaterialNone {
		t.Errorf("missing entry = %+v, %v; want MaterialNone", d, ok)
	}

	l.Clear(2, 3)
	if l.At(2, 3) != CollisionNone || len(l.Destructibles) != 0 {
		t.Error("Clear should remove tile and table entry")
	}
}

func TestDestructibleIndicesSorted(t *testing.T) {
	l := NewLayout(8, 8)
	for _, p := range []Point{{5, 5}, {1, 1}, {7, 0}, {0, 7}} {
		l.SetDestructible(p.X, p.Y, Destructible{Material: MaterialSoft})
	}
	idx := l.DestructibleIndices()
	for i := 1; i < len(idx); i++ {
		if idx[i-1] >= idx[i] {
			t.Fatalf("indices not ascending: %v", idx)
		}
	}
}

func TestDestructibleIndicesSkipOutOfRange(t *testing.T) {
	l := NewLayout(4, 4)
	l.SetDestructible(2, 2, Destructible{Material: MaterialSoft})
	l.Destructibles[-1] = Destructible{Material: MaterialHard}
	l.Destructibles[len(l.Tiles)] = Destructible{Material: MaterialHard}

	idx := l.DestructibleIndices()
	if len(idx) != 1 || idx[0] != l.Index(2, 2) {
		t.Fatalf("DestructibleIndices() = %v, want [%d]", idx, l.Index(2, 2))
	}
	if got, want := MaterialDifficulty(&l), MaterialSoft.Severity()*100/16; math.Abs(got-want) > 1e-9 {
		t.Errorf("MaterialDifficulty() = %v, want %v", got, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	l := NewLayout(4, 4)
	l.SetDestructible(1, 1, Destructible{Material: MaterialSoft})
	l.Zones = []Zone{{Kind: ZoneCombat, StartX: 0, EndX: 4}}

	c := l.Clone()
	c.Set(0, 0, CollisionSolid)
	c.Clear(1, 1)
	c.Zones[0].Kind = ZoneBoss

	if l.At(0, 0) != CollisionNone || l.At(1, 1) != CollisionDestructible || l.Zones[0].Kind != ZoneCombat {
		t.Error("mutating the clone changed the original")
	}
}

func TestZoneAt(t *testing.T) {
	l := NewLayout(20, 4)
	l.Zones = []Zone{
		{Kind: ZoneIntro, StartX: 0, EndX: 8},
		{Kind: ZoneBuffer, StartX: 8, EndX: 10},
		{Kind: ZoneGoal, StartX: 10, EndX: 20},
	}
	tests := []struct {
		x    int
		want ZoneKind
	}{
		{0, ZoneIntro},
		{7, ZoneIntro},
		{8, ZoneBuffer},
		{19, ZoneGoal},
	}
	for _, tt := range tests {
		z, ok := l.ZoneAt(tt.x)
		if !ok || z.Kind != tt.want {
			t.Errorf("ZoneAt(%d) = %v, %v; want %v", tt.x, z.Kind, ok, tt.want)
		}
	}
	if _, ok := l.ZoneAt(20); ok {
		t.Error("column past the last zone should not match")
	}
}

func TestBreakability(t *testing.T) {
	tests := []struct {
		tier WeaponTier
		mat  Material
		want bool
	}{
		{TierStarting, MaterialSoft, true},
		{TierStarting, MaterialMedium, true},
		{TierStarting, MaterialHard, false},
		{TierStarting, MaterialReinforced, false},
		{TierMedium, MaterialHard, true},
		{TierMedium, MaterialReinforced, false},
		{TierHeavy, MaterialReinforced, true},
		{TierHeavy, MaterialIndestructible, false},
		{TierStarting, MaterialIndestructible, false},
	}
	for _, tt := range tests {
		if got := tt.tier.CanBreak(tt.mat); got != tt.want {
			t.Errorf("%v.CanBreak(%v) = %v, want %v", tt.tier, tt.mat, got, tt.want)
		}
	}
}

func TestStringers(t *testing.T) {
	if CollisionPlatform.String() != "Platform" || Collision(99).String() != "Unknown" {
		t.Error("Collision.String")
	}
	if MaterialReinforced.String() != "Reinforced" {
		t.Error("Material.String")
	}
	if ZoneDestruction.String() != "Destruction" || !ZoneBuffer.Transitional() || ZoneCombat.Transitional() {
		t.Error("ZoneKind")
	}
	if BehaviorBoss.String() != "Boss" || RewardTreasure.String() != "Treasure" || TierHeavy.String() != "Heavy" {
		t.Error("entity stringers")
	}
}

func TestMetadataConsistency(t *testing.T) {
	lv := flatLevel(20, 6)
	lv.Enemies = []Enemy{{Type: 0, Pos: P(5, 4), Weight: 1}}
	lv.Checkpoints = []Checkpoint{{Pos: P(2, 4)}, {Pos: P(10, 4), Index: 1}}
	lv.Layout.SetDestructible(8, 4, Destructible{Material: MaterialSoft, Group: 1})
	lv.Layout.SetDestructible(8, 3, Destructible{Material: MaterialSoft, Group: 1})

	if lv.MetadataConsistent() {
		t.Fatal("unsealed level should be inconsistent")
	}
	lv.Seal()
	if !lv.MetadataConsistent() {
		t.Fatal("sealed level should be consistent")
	}
	if lv.Metadata.StructuralGroups != 1 || lv.Metadata.Destructibles != 2 {
		t.Errorf("metadata = %+v", lv.Metadata)
	}

	lv.Rewards = append(lv.Rewards, Reward{Pos: P(3, 4)})
	if lv.MetadataConsistent() {
		t.Error("added reward should break consistency")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := flatLevel(30, 8)
	b := flatLevel(30, 8)
	a.Seal()
	b.Seal()
	if a.Hash != b.Hash {
		t.Fatalf("identical levels hash differently: %x vs %x", a.Hash, b.Hash)
	}
	if a.ComputeHash() != a.Hash {
		t.Error("ComputeHash should not depend on the stored hash")
	}
}

func TestHashSensitivity(t *testing.T) {
	base := flatLevel(30, 8)
	base.Seal()

	mutations := []struct {
		name string
		mut  func(lv *Level)
	}{
		{"tile", func(lv *Level) { lv.Layout.Set(5, 2, CollisionPlatform) }},
		{"material", func(lv *Level) { lv.Layout.SetDestructible(3, 6, Destructible{Material: MaterialHard}) }},
		{"zone", func(lv *Level) { lv.Layout.Zones[0].HeavyDestruction = true }},
		{"start", func(lv *Level) { lv.Layout.Start = P(1, 6) }},
		{"enemy", func(lv *Level) { lv.Enemies = append(lv.Enemies, Enemy{Pos: P(4, 6), Weight: 1}) }},
		{"weapon", func(lv *Level) { lv.WeaponDrops = append(lv.WeaponDrops, WeaponDrop{Pos: P(4, 6)}) }},
		{"seed", func(lv *Level) { lv.ID = lv.ID.WithSeed(43) }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			lv := flatLevel(30, 8)
			m.mut(lv)
			lv.Seal()
			if lv.Hash == base.Hash {
				t.Errorf("mutation %q did not change the hash", m.name)
			}
		})
	}
}

func TestGapRuns(t *testing.T) {
	lv := flatLevel(12, 4)
	for _, x := range []int{3, 4, 8, 11} {
		lv.Layout.Clear(x, 3)
	}
	runs := lv.Layout.GapRuns()
	want := []Run{{Start: 3, Length: 2}, {Start: 8, Length: 1}, {Start: 11, Length: 1}}
	if len(runs) != len(want) {
		t.Fatalf("runs = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run[%d] = %v, want %v", i, runs[i], want[i])
		}
	}
}

func TestScoreComponents(t *testing.T) {
	s := config.Default().Scoring
	lv := flatLevel(100, 10)

	// Gap of width 3 at columns 10..12.
	for x := 10; x < 13; x++ {
		lv.Layout.Clear(x, 9)
	}
	lv.Layout.Set(20, 8, CollisionHazard)
	lv.Layout.SetDestructible(30, 8, Destructible{Material: MaterialHard})
	lv.Enemies = []Enemy{{Weight: 2}, {Weight: 3}}
	lv.Rewards = []Reward{{Kind: RewardCoin}}

	b := Score(lv, s)

	almost := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	almost("EnemyLoad", b.EnemyLoad, 5)
	almost("GapDifficulty", b.GapDifficulty, 0.9)
	almost("HazardDensity", b.HazardDensity, 1)
	almost("RewardScarcity", b.RewardScarcity, 2)
	almost("MaterialDifficulty", b.MaterialDifficulty, 0.2)
	almost("Composite", b.Composite, 0.35*5+0.2*0.9+0.1*1+0.15*2+0.2*0.2)
}

func TestRewardScarcity(t *testing.T) {
	tests := []struct {
		enemies, rewards int
		want             float64
	}{
		{0, 0, 0},
		{5, 0, 10},
		{4, 2, 2},
		{100, 1, 10},
	}
	for _, tt := range tests {
		if got := RewardScarcity(tt.enemies, tt.rewards, 10); got != tt.want {
			t.Errorf("RewardScarcity(%d, %d) = %v, want %v", tt.enemies, tt.rewards, got, tt.want)
		}
	}
}

func TestEnemyLoadScalesWithWidth(t *testing.T) {
	if EnemyLoad(10, 100) != 10 {
		t.Error("100 columns should be the unit width")
	}
	if EnemyLoad(10, 200) != 5 {
		t.Error("doubling width should halve enemy load")
	}
	if EnemyLoad(10, 0) != 10 {
		t.Error("zero width should not divide by zero")
	}
}
