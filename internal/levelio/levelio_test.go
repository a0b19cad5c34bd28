package levelio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/generator"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
)

func generated(t *testing.T) *level.Level {
	t.Helper()
	return generator.New(config.Default(), nil).Generate(levelid.MustNew(1, 2, 7, 0xBEEF))
}

func TestRoundTrip(t *testing.T) {
	lv := generated(t)

	data, err := Marshal(lv)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, lv.ID, got.ID)
	assert.Equal(t, lv.Hash, got.Hash)
	assert.Equal(t, lv.Layout, got.Layout)
	assert.Equal(t, lv.Enemies, got.Enemies)
	assert.Equal(t, lv.WeaponDrops, got.WeaponDrops)
	assert.Equal(t, lv.Rewards, got.Rewards)
	assert.Equal(t, lv.Checkpoints, got.Checkpoints)
	assert.Equal(t, lv.Metadata, got.Metadata)
}

func TestFileRoundTrip(t *testing.T) {
	lv := generated(t)
	path := filepath.Join(t.TempDir(), "level.yaml")

	require.NoError(t, WriteFile(path, lv))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lv.Hash, got.Hash)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestTamperedLevelRejected(t *testing.T) {
	doc := Encode(generated(t))
	require.Equal(t, byte('.'), doc.Rows[0][0])
	doc.Rows[0] = "#" + doc.Rows[0][1:]

	_, err := Decode(doc)
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
		want   string
	}{
		{"bad id", func(d *Document) { d.ID = "LVLID_1_9_0_0000000000000001" }, "invalid level id"},
		{"bad hash", func(d *Document) { d.Hash = "xyz" }, "invalid hash"},
		{"bad size", func(d *Document) { d.Size.W = 0 }, "invalid size"},
		{"missing row", func(d *Document) { d.Rows = d.Rows[1:] }, "rows"},
		{"short row", func(d *Document) { d.Rows[0] = d.Rows[0][1:] }, "tiles"},
		{"unknown tile", func(d *Document) { d.Rows[0] = "?" + d.Rows[0][1:] }, "unknown tile"},
		{"unknown zone", func(d *Document) { d.Zones[0].Kind = "Lobby" }, "zone kind"},
		{"unknown material", func(d *Document) { d.Destructibles[0].Material = "Glass" }, "material"},
		{"destructible outside", func(d *Document) { d.Destructibles[0].X = -1 }, "outside"},
		{"unknown behavior", func(d *Document) { d.Enemies[0].Behavior = "Sleeper" }, "behavior"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Encode(generated(t))
			require.NotEmpty(t, doc.Destructibles)
			tt.mutate(&doc)

			_, err := Decode(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeRows(t *testing.T) {
	lv := &level.Level{ID: levelid.MustNew(1, 0, 0, 1), Layout: level.NewLayout(5, 2)}
	l := &lv.Layout
	l.Set(0, 1, level.CollisionSolid)
	l.Set(1, 1, level.CollisionHazard)
	l.Set(2, 1, level.CollisionPlatform)
	l.SetDestructible(3, 1, level.Destructible{Material: level.MaterialHard, Group: 4, LoadBearing: true})
	lv.Seal()

	doc := Encode(lv)
	assert.Equal(t, []string{".....", "#^=D."}, doc.Rows)
	assert.Equal(t, []YAMLDestructible{{X: 3, Y: 1, Material: "Hard", Group: 4, LoadBearing: true}}, doc.Destructibles)
	assert.Len(t, doc.Hash, 16)
	assert.Equal(t, strings.ToUpper(doc.Hash), doc.Hash)

	got, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, lv.Layout.Tiles, got.Layout.Tiles)
}

func TestParseName(t *testing.T) {
	m, ok := parseName[level.Material]("Reinforced", level.MaterialIndestructible)
	assert.True(t, ok)
	assert.Equal(t, level.MaterialReinforced, m)

	_, ok = parseName[level.Material]("Unknown", level.MaterialIndestructible)
	assert.False(t, ok)
}
