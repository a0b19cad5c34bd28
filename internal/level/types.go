// Package level defines the generated level artifact: the tile layout, the
// destructible table, zones, entity lists, metadata and content hash.
// This package is deterministic and has no I/O.
package level

// Collision is the collision class of a tile.
type Collision uint8

const (
	CollisionNone Collision = iota
	CollisionSolid
	CollisionHazard
	CollisionPlatform // Passthrough platform, can be jumped through from below
	CollisionDestructible
)

// String returns the string representation of a collision class.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "None"
	case CollisionSolid:
		return "Solid"
	case CollisionHazard:
		return "Hazard"
	case CollisionPlatform:
		return "Platform"
	case CollisionDestructible:
		return "Destructible"
	default:
		return "Unknown"
	}
}

// IsGround reports whether the tile provides a ground-type surface,
// regardless of breakability.
func (c Collision) IsGround() bool {
	switch c {
	case CollisionSolid, CollisionPlatform, CollisionDestructible:
		return true
	default:
		return false
	}
}

// Material is the hardness class of a destructible tile.
type Material uint8

const (
	MaterialNone Material = iota
	MaterialSoft
	MaterialMedium
	MaterialHard
	MaterialReinforced
	MaterialIndestructible
)

// String returns the string representation of a material.
func (m Material) String() string {
	switch m {
	case MaterialNone:
		return "None"
	case MaterialSoft:
		return "Soft"
	case MaterialMedium:
		return "Medium"
	case MaterialHard:
		return "Hard"
	case MaterialReinforced:
		return "Reinforced"
	case MaterialIndestructible:
		return "Indestructible"
	default:
		return "Unknown"
	}
}

// Severity is the material's contribution to the destructible difficulty score.
func (m Material) Severity() float64 {
	switch m {
	case MaterialSoft:
		return 0.5
	case MaterialMedium:
		return 1.0
	case MaterialHard:
		return 2.0
	case MaterialReinforced:
		return 3.0
	case MaterialIndestructible:
		return 4.0
	default:
		return 0
	}
}

// RequiredTier returns the lowest weapon tier able to break m. ok is false
// for materials no tier can break.
func (m Material) RequiredTier() (tier WeaponTier, ok bool) {
	switch m {
	case MaterialNone, MaterialSoft, MaterialMedium:
		return TierStarting, true
	case MaterialHard:
		return TierMedium, true
	case MaterialReinforced:
		return TierHeavy, true
	default:
		return 0, false
	}
}

// WeaponTier is the player's weapon upgrade level.
type WeaponTier uint8

const (
	TierStarting WeaponTier = iota
	TierMedium
	TierHeavy
)

// String returns the string representation of a weapon tier.
func (t WeaponTier) String() string {
	switch t {
	case TierStarting:
		return "Starting"
	case TierMedium:
		return "Medium"
	case TierHeavy:
		return "Heavy"
	default:
		return "Unknown"
	}
}

// CanBreak reports whether tier t destroys material m.
func (t WeaponTier) CanBreak(m Material) bool {
	need, ok := m.RequiredTier()
	return ok && t >= need
}

// ZoneKind tags a run of columns with its gameplay role.
type ZoneKind uint8

const (
	ZoneIntro ZoneKind = iota
	ZoneCombat
	ZoneDestruction
	ZonePlatforming
	ZoneBuffer
	ZoneBoss
	ZoneGoal
)

// String returns the string representation of a zone kind.
func (k ZoneKind) String() string {
	switch k {
	case ZoneIntro:
		return "Intro"
	case ZoneCombat:
		return "Combat"
	case ZoneDestruction:
		return "Destruction"
	case ZonePlatforming:
		return "Platforming"
	case ZoneBuffer:
		return "Buffer"
	case ZoneBoss:
		return "Boss"
	case ZoneGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Transitional reports whether the zone only connects other zones.
func (k ZoneKind) Transitional() bool {
	return k == ZoneBuffer
}

// Behavior is an enemy AI archetype.
type Behavior uint8

const (
	BehaviorPatrol Behavior = iota
	BehaviorChaser
	BehaviorFlyer
	BehaviorShooter
	BehaviorBoss
)

// String returns the string representation of a behavior.
func (b Behavior) String() string {
	switch b {
	case BehaviorPatrol:
		return "Patrol"
	case BehaviorChaser:
		return "Chaser"
	case BehaviorFlyer:
		return "Flyer"
	case BehaviorShooter:
		return "Shooter"
	case BehaviorBoss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// RewardKind is the kind of pickup a reward grants.
type RewardKind uint8

const (
	RewardCoin RewardKind = iota
	RewardHealth
	RewardAmmo
	RewardTreasure
)

// String returns the string representation of a reward kind.
func (k RewardKind) String() string {
	switch k {
	case RewardCoin:
		return "Coin"
	case RewardHealth:
		return "Health"
	case RewardAmmo:
		return "Ammo"
	case RewardTreasure:
		return "Treasure"
	default:
		return "Unknown"
	}
}
