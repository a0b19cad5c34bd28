package generator

import (
	"math"
	"sort"

	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/rng"
)

// budgetSlack is how far below the target score enemy placement may stop.
const budgetSlack = 0.25

// bossHPPerWeight converts boss hit points to difficulty weight.
const bossHPPerWeight = 400.0

var roamers = []level.Behavior{level.BehaviorPatrol, level.BehaviorChaser, level.BehaviorFlyer}
var roamerWeights = []float64{0.5, 0.3, 0.2}

var behaviorWeight = map[level.Behavior]float64{
	level.BehaviorPatrol:  1.0,
	level.BehaviorChaser:  1.3,
	level.BehaviorFlyer:   1.5,
	level.BehaviorShooter: 1.6,
}

var rewardKinds = []level.RewardKind{level.RewardCoin, level.RewardHealth, level.RewardAmmo}
var rewardKindWeights = []float64{0.65, 0.15, 0.2}

var rewardValue = map[level.RewardKind]int{
	level.RewardCoin:     10,
	level.RewardHealth:   25,
	level.RewardAmmo:     20,
	level.RewardTreasure: 100,
}

// validPerch reports whether p is still an open spot on top of a
// platform or block.
func (b *build) validPerch(p level.Point) bool {
	l := &b.lv.Layout
	if !l.InBounds(p.X, p.Y) || b.taken[p] || l.At(p.X, p.Y) != level.CollisionNone {
		return false
	}
	below := l.At(p.X, p.Y+1)
	return below == level.CollisionPlatform || below == level.CollisionDestructible
}

// perchesIn returns the open perches inside zone z.
func (b *build) perchesIn(z level.Zone) []level.Point {
	var out []level.Point
	for _, p := range b.perches {
		if z.Contains(p.X) && b.validPerch(p) {
			out = append(out, p)
		}
	}
	return out
}

// placeCheckpoints puts a checkpoint in the intro, in every buffer and at
// the entrance of the boss arena and goal zone, then tops up to the
// configured minimum.
func (b *build) placeCheckpoints(r *rng.RNG) {
	l := &b.lv.Layout
	var cps []level.Checkpoint

	add := func(x, lo, hi int) bool {
		p, ok := b.nearestFreeSpot(clampInt(x, lo, hi-1), lo, hi)
		if !ok {
			return false
		}
		b.take(p)
		cps = append(cps, level.Checkpoint{Pos: p})
		return true
	}

	for _, z := range l.Zones {
		switch z.Kind {
		case level.ZoneIntro, level.ZoneBuffer:
			add(z.StartX+z.Width()/2+r.Range(-1, 2), z.StartX, z.EndX)
		case level.ZoneBoss, level.ZoneGoal:
			add(z.StartX+2, z.StartX, z.EndX)
		}
	}

	for tries := 0; len(cps) < b.cfg.Validation.MinCheckpoints && tries < l.Width; tries++ {
		add(r.Intn(l.Width), 0, l.Width)
	}

	sort.SliceStable(cps, func(i, j int) bool { return cps[i].Pos.X < cps[j].Pos.X })
	for i := range cps {
		cps[i].Index = i
	}
	b.lv.Checkpoints = cps
}

// placeWeapons drops the medium and heavy weapons on the primary path in
// their bands, then a few optional drops on perches.
func (b *build) placeWeapons(r *rng.RNG) {
	bands := []struct {
		tier     level.WeaponTier
		from, to float64
	}{
		{level.TierMedium, mediumBandFrom, mediumBandTo},
		{level.TierHeavy, heavyBandFrom, heavyBandTo},
	}
	for _, band := range bands {
		lo, hi := b.band(band.from, band.to)
		p, ok := b.nearestFreeSpot(r.Range(lo, hi), lo, hi)
		if !ok {
			continue
		}
		b.take(p)
		b.lv.WeaponDrops = append(b.lv.WeaponDrops, level.WeaponDrop{Pos: p, Tier: band.tier, OnPrimaryPath: true})
	}

	heavyLo, _ := b.band(heavyBandFrom, 1)
	perches := append([]level.Point(nil), b.perches...)
	r.Shuffle(len(perches), func(i, j int) { perches[i], perches[j] = perches[j], perches[i] })

	extra := 0
	for _, p := range perches {
		if extra == 2 {
			break
		}
		if !b.validPerch(p) || !r.Bool(0.3) {
			continue
		}
		tier := level.TierMedium
		if p.X >= heavyLo {
			tier = level.TierHeavy
		}
		b.take(p)
		b.lv.WeaponDrops = append(b.lv.WeaponDrops, level.WeaponDrop{Pos: p, Tier: tier})
		extra++
	}
}

// placeRewards puts treasure on vault tops and a fixed number of pickups
// in every non-buffer zone, some of them on perches.
func (b *build) placeRewards(r *rng.RNG) {
	l := &b.lv.Layout

	for _, p := range b.vaultTops {
		if !l.InBounds(p.X, p.Y) || b.taken[p] || l.At(p.X, p.Y) != level.CollisionNone {
			continue
		}
		b.take(p)
		b.lv.Rewards = append(b.lv.Rewards, level.Reward{
			Pos:   p,
			Kind:  level.RewardTreasure,
			Value: rewardValue[level.RewardTreasure],
		})
	}

	for _, z := range l.Zones {
		if z.Kind.Transitional() {
			continue
		}
		for i := 0; i < b.cfg.Layout.RewardsPerZone; i++ {
			var p level.Point
			ok := false
			if perches := b.perchesIn(z); len(perches) > 0 && r.Bool(0.35) {
				p, ok = perches[r.Intn(len(perches))], true
			} else {
				p, ok = b.nearestFreeSpot(r.Range(z.StartX, z.EndX), z.StartX, z.EndX)
			}
			if !ok {
				continue
			}
			kind := rewardKinds[r.WeightedChoice(rewardKindWeights)]
			b.take(p)
			b.lv.Rewards = append(b.lv.Rewards, level.Reward{Pos: p, Kind: kind, Value: rewardValue[kind]})
		}
	}
}

// enemySpots lists the open positions in zones that host enemies.
func (b *build) enemySpots() []level.Point {
	var spots []level.Point
	for _, z := range b.lv.Layout.Zones {
		switch z.Kind {
		case level.ZoneCombat, level.ZoneDestruction, level.ZonePlatforming, level.ZoneBoss:
		default:
			continue
		}
		for x := z.StartX; x < z.EndX; x++ {
			if p, ok := b.freeSpot(x); ok {
				spots = append(spots, p)
			}
		}
		spots = append(spots, b.perchesIn(z)...)
	}
	return spots
}

// placeEnemies places the boss, then fills enemies in packs until the
// composite difficulty score reaches the target for the level's
// difficulty and the level holds at least the base enemy count. Enemies
// added only to reach the base count never push the score past the
// ceiling. It returns the final score.
func (b *build) placeEnemies(r *rng.RNG) float64 {
	lv := b.lv
	s := b.cfg.Scoring
	target := s.Target(lv.ID.Difficulty())
	ceiling := target + s.Tolerance/2

	base := level.Score(lv, s)
	total := 0.0
	scoreWith := func(weight float64, count int) float64 {
		bd := base
		bd.EnemyLoad = level.EnemyLoad(total+weight, lv.Layout.Width)
		bd.RewardScarcity = level.RewardScarcity(count, len(lv.Rewards), s.ScarcityCap)
		return bd.Weighted(s)
	}
	add := func(e level.Enemy) {
		b.take(e.Pos)
		total += e.Weight
		lv.Enemies = append(lv.Enemies, e)
	}

	for _, z := range lv.Layout.Zones {
		if z.Kind != level.ZoneBoss {
			continue
		}
		if p, ok := b.nearestFreeSpot(z.StartX+z.Width()/2, z.StartX, z.EndX); ok {
			add(level.Enemy{
				Type:     lv.ID.Era()*3 + 2,
				Pos:      p,
				Weight:   b.params.BossHP / bossHPPerWeight,
				Behavior: level.BehaviorBoss,
			})
		}
		break
	}

	spots := b.enemySpots()
	r.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })

	pack := max(1, int(math.Round(b.params.EnemyCountMultiplier)))
	limit := b.cfg.Layout.MaxEnemies
	least := min(b.cfg.Layout.BaseEnemyCount, limit)
	score := scoreWith(0, len(lv.Enemies))

	next := 0
	for (score < target-budgetSlack || len(lv.Enemies) < least) && next < len(spots) && len(lv.Enemies) < limit {
		for k := 0; k < pack && next < len(spots) && len(lv.Enemies) < limit; k++ {
			spot := spots[next]
			next++
			if b.taken[spot] {
				continue
			}
			e := b.rollEnemy(r, spot)
			over := scoreWith(e.Weight, len(lv.Enemies)+1) > ceiling
			if over && (k > 0 || score >= target-budgetSlack) {
				break
			}
			add(e)
			score = scoreWith(0, len(lv.Enemies))
		}
	}
	return score
}

// rollEnemy draws an enemy of the level's era band at p.
func (b *build) rollEnemy(r *rng.RNG, p level.Point) level.Enemy {
	era := b.lv.ID.Era()
	e := level.Enemy{Type: r.Range(era*3, era*3+3), Pos: p}

	if r.Bool(b.params.ShootPercentage) {
		e.Behavior = level.BehaviorShooter
	} else {
		e.Behavior = roamers[r.WeightedChoice(roamerWeights)]
	}

	if e.Behavior == level.BehaviorFlyer {
		y := p.Y - r.Range(2, 5)
		if y >= 0 && b.lv.Layout.At(p.X, y) == level.CollisionNone && !b.taken[level.P(p.X, y)] {
			e.Pos.Y = y
		}
	}

	e.Weight = behaviorWeight[e.Behavior] * b.params.EnemyHPMultiplier * b.params.EnemySpeedMultiplier
	return e
}
