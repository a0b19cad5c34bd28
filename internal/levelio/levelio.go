// Package levelio exports generated levels to YAML and imports them back.
// Importing recomputes the content hash and rejects files whose hash does
// not match, so an imported level is byte-for-byte the one exported.
package levelio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
)

// ErrHashMismatch is returned when an imported level does not hash to the
// value recorded in the file.
var ErrHashMismatch = errors.New("levelio: content hash mismatch")

// Tile glyphs used in the rows section.
const (
	glyphNone         = '.'
	glyphSolid        = '#'
	glyphHazard       = '^'
	glyphPlatform     = '='
	glyphDestructible = 'D'
)

// Document is the YAML structure of an exported level.
type Document struct {
	ID   string   `yaml:"id"`
	Hash string   `yaml:"hash"`
	Size YAMLSize `yaml:"size"`

	Start YAMLPoint  `yaml:"start"`
	Goal  YAMLPoint  `yaml:"goal"`
	Zones []YAMLZone `yaml:"zones"`

	// Rows holds one string per tile row, top to bottom.
	Rows          []string           `yaml:"rows"`
	Destructibles []YAMLDestructible `yaml:"destructibles,omitempty"`

	Enemies     []YAMLEnemy      `yaml:"enemies,omitempty"`
	Weapons     []YAMLWeapon     `yaml:"weapons,omitempty"`
	Rewards     []YAMLReward     `yaml:"rewards,omitempty"`
	Checkpoints []YAMLCheckpoint `yaml:"checkpoints,omitempty"`

	Metadata YAMLMetadata `yaml:"metadata"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a tile coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type YAMLZone struct {
	Kind  string `yaml:"kind"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Heavy bool   `yaml:"heavy,omitempty"`
}

type YAMLDestructible struct {
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Material    string `yaml:"material"`
	Group       int32  `yaml:"group"`
	LoadBearing bool   `yaml:"load_bearing,omitempty"`
}

type YAMLEnemy struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	Type     int     `yaml:"type"`
	Behavior string  `yaml:"behavior"`
	Weight   float64 `yaml:"weight"`
}

type YAMLWeapon struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Tier   string `yaml:"tier"`
	OnPath bool   `yaml:"on_path"`
}

type YAMLReward struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
}

type YAMLCheckpoint struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Index int `yaml:"index"`
}

// YAMLMetadata mirrors level.Metadata.
type YAMLMetadata struct {
	Enemies          int                     `yaml:"enemies"`
	WeaponDrops      int                     `yaml:"weapon_drops"`
	Rewards          int                     `yaml:"rewards"`
	Checkpoints      int                     `yaml:"checkpoints"`
	Destructibles    int                     `yaml:"destructibles"`
	StructuralGroups int                     `yaml:"structural_groups"`
	Params           config.DifficultyParams `yaml:"params"`
}

// Encode converts a level to its document form.
func Encode(lv *level.Level) Document {
	l := &lv.Layout
	doc := Document{
		ID:    lv.ID.Encode(),
		Hash:  fmt.Sprintf("%016X", lv.Hash),
		Size:  YAMLSize{W: l.Width, H: l.Height},
		Start: point(l.Start),
		Goal:  point(l.Goal),
		Rows:  make([]string, l.Height),
	}

	for _, z := range l.Zones {
		doc.Zones = append(doc.Zones, YAMLZone{Kind: z.Kind.String(), Start: z.StartX, End: z.EndX, Heavy: z.HeavyDestruction})
	}

	var sb strings.Builder
	for y := 0; y < l.Height; y++ {
		sb.Reset()
		for x := 0; x < l.Width; x++ {
			sb.WriteByte(glyph(l.At(x, y)))
		}
		doc.Rows[y] = sb.String()
	}

	for _, idx := range l.DestructibleIndices() {
		d := l.Destructibles[idx]
		p := l.Point(idx)
		doc.Destructibles = append(doc.Destructibles, YAMLDestructible{
			X: p.X, Y: p.Y,
			Material:    d.Material.String(),
			Group:       int32(d.Group),
			LoadBearing: d.LoadBearing,
		})
	}

	for _, e := range lv.Enemies {
		doc.Enemies = append(doc.Enemies, YAMLEnemy{X: e.Pos.X, Y: e.Pos.Y, Type: e.Type, Behavior: e.Behavior.String(), Weight: e.Weight})
	}
	for _, w := range lv.WeaponDrops {
		doc.Weapons = append(doc.Weapons, YAMLWeapon{X: w.Pos.X, Y: w.Pos.Y, Tier: w.Tier.String(), OnPath: w.OnPrimaryPath})
	}
	for _, r := range lv.Rewards {
		doc.Rewards = append(doc.Rewards, YAMLReward{X: r.Pos.X, Y: r.Pos.Y, Kind: r.Kind.String(), Value: r.Value})
	}
	for _, c := range lv.Checkpoints {
		doc.Checkpoints = append(doc.Checkpoints, YAMLCheckpoint{X: c.Pos.X, Y: c.Pos.Y, Index: c.Index})
	}

	m := lv.Metadata
	doc.Metadata = YAMLMetadata{
		Enemies:          m.TotalEnemies,
		WeaponDrops:      m.TotalWeaponDrops,
		Rewards:          m.TotalRewards,
		Checkpoints:      m.TotalCheckpoints,
		Destructibles:    m.Destructibles,
		StructuralGroups: m.StructuralGroups,
		Params:           m.Params,
	}
	return doc
}

// Decode rebuilds a level from its document form and verifies the hash.
func Decode(doc Document) (*level.Level, error) {
	id, ok := levelid.Parse(doc.ID)
	if !ok {
		return nil, fmt.Errorf("levelio: invalid level id %q", doc.ID)
	}
	want, err := strconv.ParseUint(doc.Hash, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("levelio: invalid hash %q: %w", doc.Hash, err)
	}

	w, h := doc.Size.W, doc.Size.H
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("levelio: invalid size %dx%d", w, h)
	}
	if len(doc.Rows) != h {
		return nil, fmt.Errorf("levelio: %d rows, size says %d", len(doc.Rows), h)
	}

	lv := &level.Level{ID: id, Layout: level.NewLayout(w, h)}
	l := &lv.Layout
	l.Start = level.P(doc.Start.X, doc.Start.Y)
	l.Goal = level.P(doc.Goal.X, doc.Goal.Y)

	for y, row := range doc.Rows {
		if len(row) != w {
			return nil, fmt.Errorf("levelio: row %d has %d tiles, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			c, ok := collision(row[x])
			if !ok {
				return nil, fmt.Errorf("levelio: row %d: unknown tile %q", y, row[x])
			}
			l.Set(x, y, c)
		}
	}

	for _, z := range doc.Zones {
		kind, ok := parseName[level.ZoneKind](z.Kind, level.ZoneGoal)
		if !ok {
			return nil, fmt.Errorf("levelio: unknown zone kind %q", z.Kind)
		}
		l.Zones = append(l.Zones, level.Zone{Kind: kind, StartX: z.Start, EndX: z.End, HeavyDestruction: z.Heavy})
	}

	for _, d := range doc.Destructibles {
		m, ok := parseName[level.Material](d.Material, level.MaterialIndestructible)
		if !ok {
			return nil, fmt.Errorf("levelio: unknown material %q", d.Material)
		}
		if !l.InBounds(d.X, d.Y) {
			return nil, fmt.Errorf("levelio: destructible at (%d,%d) outside %dx%d", d.X, d.Y, w, h)
		}
		l.SetDestructible(d.X, d.Y, level.Destructible{Material: m, Group: level.GroupID(d.Group), LoadBearing: d.LoadBearing})
	}

	for _, e := range doc.Enemies {
		b, ok := parseName[level.Behavior](e.Behavior, level.BehaviorBoss)
		if !ok {
			return nil, fmt.Errorf("levelio: unknown behavior %q", e.Behavior)
		}
		lv.Enemies = append(lv.Enemies, level.Enemy{Type: e.Type, Pos: level.P(e.X, e.Y), Weight: e.Weight, Behavior: b})
	}
	for _, wd := range doc.Weapons {
		t, ok := parseName[level.WeaponTier](wd.Tier, level.TierHeavy)
		if !ok {
			return nil, fmt.Errorf("levelio: unknown weapon tier %q", wd.Tier)
		}
		lv.WeaponDrops = append(lv.WeaponDrops, level.WeaponDrop{Pos: level.P(wd.X, wd.Y), Tier: t, OnPrimaryPath: wd.OnPath})
	}
	for _, r := range doc.Rewards {
		k, ok := parseName[level.RewardKind](r.Kind, level.RewardTreasure)
		if !ok {
			return nil, fmt.Errorf("levelio: unknown reward kind %q", r.Kind)
		}
		lv.Rewards = append(lv.Rewards, level.Reward{Pos: level.P(r.X, r.Y), Kind: k, Value: r.Value})
	}
	for _, c := range doc.Checkpoints {
		lv.Checkpoints = append(lv.Checkpoints, level.Checkpoint{Pos: level.P(c.X, c.Y), Index: c.Index})
	}

	m := doc.Metadata
	lv.Metadata = level.Metadata{
		TotalEnemies:     m.Enemies,
		TotalWeaponDrops: m.WeaponDrops,
		TotalRewards:     m.Rewards,
		TotalCheckpoints: m.Checkpoints,
		Destructibles:    m.Destructibles,
		StructuralGroups: m.StructuralGroups,
		Params:           m.Params,
	}

	lv.Hash = lv.ComputeHash()
	if lv.Hash != want {
		return nil, fmt.Errorf("%w: file says %016X, content hashes to %016X", ErrHashMismatch, want, lv.Hash)
	}
	return lv, nil
}

// Marshal encodes a level as YAML.
func Marshal(lv *level.Level) ([]byte, error) {
	data, err := yaml.Marshal(Encode(lv))
	if err != nil {
		return nil, fmt.Errorf("levelio: yaml marshal: %w", err)
	}
	return data, nil
}

// Unmarshal parses a YAML level and verifies its hash.
func Unmarshal(data []byte) (*level.Level, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("levelio: yaml unmarshal: %w", err)
	}
	return Decode(doc)
}

// WriteFile exports a level to path.
func WriteFile(path string, lv *level.Level) error {
	data, err := Marshal(lv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("levelio: writing %s: %w", path, err)
	}
	return nil
}

// ReadFile imports a level from path.
func ReadFile(path string) (*level.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levelio: reading %s: %w", path, err)
	}
	lv, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lv, nil
}

func point(p level.Point) YAMLPoint {
	return YAMLPoint{X: p.X, Y: p.Y}
}

func glyph(c level.Collision) byte {
	switch c {
	case level.CollisionSolid:
		return glyphSolid
	case level.CollisionHazard:
		return glyphHazard
	case level.CollisionPlatform:
		return glyphPlatform
	case level.CollisionDestructible:
		return glyphDestructible
	default:
		return glyphNone
	}
}

func collision(b byte) (level.Collision, bool) {
	switch b {
	case glyphNone:
		return level.CollisionNone, true
	case glyphSolid:
		return level.CollisionSolid, true
	case glyphHazard:
		return level.CollisionHazard, true
	case glyphPlatform:
		return level.CollisionPlatform, true
	case glyphDestructible:
		return level.CollisionDestructible, true
	}
	return 0, false
}

// named is an enum with a String method over a dense range starting at 0.
type named interface {
	~uint8
	String() string
}

// parseName finds the value in [0, last] whose String matches name.
func parseName[T named](name string, last T) (T, bool) {
	for v := T(0); v <= last; v++ {
		if v.String() == name {
			return v, true
		}
	}
	return 0, false
}
