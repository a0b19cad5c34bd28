package level

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds fixed-width little-endian values into an xxhash digest.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) putUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
}

func (h *hasher) putInt(v int)       { h.putUint64(uint64(int64(v))) }
func (h *hasher) putFloat(v float64) { h.putUint64(math.Float64bits(v)) }
func (h *hasher) putPoint(p Point)   { h.putInt(p.X); h.putInt(p.Y) }
func (h *hasher) putBool(v bool)     { h.putUint64(boolBit(v)) }
func (h *hasher) putByte(v uint8)    { h.putUint64(uint64(v)) }
func (h *hasher) putSection(n uint8) { h.putUint64(0xFEEDC0DE00000000 | uint64(n)) }

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// ComputeHash returns a digest over the whole artifact: identifier, layout,
// destructible table (in index order), zones, entity lists and metadata.
// The stored Hash field is not part of the input.
func (lv *Level) ComputeHash() uint64 {
	h := &hasher{d: xxhash.New()}

	h.putSection(0)
	h.putUint64(uint64(lv.ID.Version()))
	h.putInt(lv.ID.Difficulty())
	h.putInt(lv.ID.Era())
	h.putUint64(lv.ID.Seed())

	l := &lv.Layout
	h.putSection(1)
	h.putInt(l.Width)
	h.putInt(l.Height)
	h.putInt(len(l.Tiles))
	tiles := make([]byte, len(l.Tiles))
	for i, t := range l.Tiles {
		tiles[i] = byte(t)
	}
	h.d.Write(tiles)

	h.putSection(2)
	for _, idx := range l.DestructibleIndices() {
		d := l.Destructibles[idx]
		h.putInt(idx)
		h.putByte(uint8(d.Material))
		h.putUint64(uint64(uint32(d.Group)))
		h.putBool(d.LoadBearing)
	}

	h.putSection(3)
	for _, z := range l.Zones {
		h.putByte(uint8(z.Kind))
		h.putInt(z.StartX)
		h.putInt(z.EndX)
		h.putBool(z.HeavyDestruction)
	}
	h.putPoint(l.Start)
	h.putPoint(l.Goal)

	h.putSection(4)
	for _, e := range lv.Enemies {
		h.putInt(e.Type)
		h.putPoint(e.Pos)
		h.putFloat(e.Weight)
		h.putByte(uint8(e.Behavior))
	}

	h.putSection(5)
	for _, w := range lv.WeaponDrops {
		h.putPoint(w.Pos)
		h.putByte(uint8(w.Tier))
		h.putBool(w.OnPrimaryPath)
	}

	h.putSection(6)
	for _, r := range lv.Rewards {
		h.putPoint(r.Pos)
		h.putByte(uint8(r.Kind))
		h.putInt(r.Value)
	}

	h.putSection(7)
	for _, c := range lv.Checkpoints {
		h.putPoint(c.Pos)
		h.putInt(c.Index)
	}

	m := lv.Metadata
	h.putSection(8)
	h.putInt(m.TotalEnemies)
	h.putInt(m.TotalWeaponDrops)
	h.putInt(m.TotalRewards)
	h.putInt(m.TotalCheckpoints)
	h.putInt(m.Destructibles)
	h.putInt(m.StructuralGroups)
	h.putFloat(m.Params.EnemyCountMultiplier)
	h.putFloat(m.Params.EnemyHPMultiplier)
	h.putFloat(m.Params.EnemySpeedMultiplier)
	h.putFloat(m.Params.ShootPercentage)
	h.putFloat(m.Params.BossHP)

	return h.d.Sum64()
}
