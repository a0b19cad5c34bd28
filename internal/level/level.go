package level

import (
	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/levelid"
)

// Enemy is a placed enemy.
type Enemy struct {
	Type     int // Era band: [era*3, era*3+2]
	Pos      Point
	Weight   float64 // Difficulty contribution
	Behavior Behavior
}

// WeaponDrop is a placed weapon pickup.
type WeaponDrop struct {
	Pos           Point
	Tier          WeaponTier
	OnPrimaryPath bool
}

// Reward is a placed pickup.
type Reward struct {
	Pos   Point
	Kind  RewardKind
	Value int
}

// Checkpoint is a respawn point.
type Checkpoint struct {
	Pos   Point
	Index int
}

// Metadata carries redundant counts used as a consistency check, plus the
// derived parameters the level was built with.
type Metadata struct {
	TotalEnemies     int
	TotalWeaponDrops int
	TotalRewards     int
	TotalCheckpoints int
	Destructibles    int
	StructuralGroups int

	Params config.DifficultyParams
}

// Level is a complete generated level. It is produced once by the
// generator and treated as read-only afterwards.
type Level struct {
	ID     levelid.ID
	Layout Layout

	Enemies     []Enemy
	WeaponDrops []WeaponDrop
	Rewards     []Reward
	Checkpoints []Checkpoint

	Metadata Metadata
	Hash     uint64
}

// RefreshMetadata recomputes the metadata counts from the entity lists and
// destructible table.
func (lv *Level) RefreshMetadata() {
	groups := make(map[GroupID]struct{})
	for _, d := range lv.Layout.Destructibles {
		groups[d.Group] = struct{}{}
	}

	lv.Metadata.TotalEnemies = len(lv.Enemies)
	lv.Metadata.TotalWeaponDrops = len(lv.WeaponDrops)
	lv.Metadata.TotalRewards = len(lv.Rewards)
	lv.Metadata.TotalCheckpoints = len(lv.Checkpoints)
	lv.Metadata.Destructibles = len(lv.Layout.Destructibles)
	lv.Metadata.StructuralGroups = len(groups)
}

// MetadataConsistent reports whether the metadata counts match the lists.
func (lv *Level) MetadataConsistent() bool {
	m := lv.Metadata
	return m.TotalEnemies == len(lv.Enemies) &&
		m.TotalWeaponDrops == len(lv.WeaponDrops) &&
		m.TotalRewards == len(lv.Rewards) &&
		m.TotalCheckpoints == len(lv.Checkpoints) &&
		m.Destructibles == len(lv.Layout.Destructibles)
}

// Seal refreshes the metadata and stores the content hash.
func (lv *Level) Seal() {
	lv.RefreshMetadata()
	lv.Hash = lv.ComputeHash()
}

// Positions returns every entity coordinate in list order: enemies, weapon
// drops, rewards, checkpoints.
func (lv *Level) Positions() []Point {
	pts := make([]Point, 0, len(lv.Enemies)+len(lv.WeaponDrops)+len(lv.Rewards)+len(lv.Checkpoints))
	for _, e := range lv.Enemies {
		pts = append(pts, e.Pos)
	}
	for _, w := range lv.WeaponDrops {
		pts = append(pts, w.Pos)
	}
	for _, r := range lv.Rewards {
		pts = append(pts, r.Pos)
	}
	for _, c := range lv.Checkpoints {
		pts = append(pts, c.Pos)
	}
	return pts
}
