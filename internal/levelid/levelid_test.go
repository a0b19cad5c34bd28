package levelid

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFormat(t *testing.T) {
	id := MustNew(1, 3, 5, 1)
	assert.Equal(t, "LVLID_1_3_5_0000000000000001", id.Encode())

	id = MustNew(2, 0, 9, 0xDEADBEEFCAFE)
	assert.Equal(t, "LVLID_2_0_9_0000DEADBEEFCAFE", id.String())
}

func TestParseValid(t *testing.T) {
	id, ok := Parse("LVLID_1_3_5_0000000000000001")
	require.True(t, ok)
	assert.Equal(t, uint32(1), id.Version())
	assert.Equal(t, 3, id.Difficulty())
	assert.Equal(t, 5, id.Era())
	assert.Equal(t, uint64(1), id.Seed())

	lower, ok := Parse("LVLID_1_0_0_00000000deadbeef")
	require.True(t, ok)
	assert.Equal(t, uint64(0xdeadbeef), lower.Seed())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", "LEVEL_1_3_5_0000000000000001"},
		{"lowercase prefix", "lvlid_1_3_5_0000000000000001"},
		{"missing seed", "LVLID_1_3_5"},
		{"missing fields", "LVLID_1"},
		{"extra field", "LVLID_1_3_5_0000000000000001_X"},
		{"non-numeric difficulty", "LVLID_1_x_5_0000000000000001"},
		{"non-numeric era", "LVLID_1_3_e_0000000000000001"},
		{"non-numeric version", "LVLID_v1_3_5_0000000000000001"},
		{"difficulty too high", "LVLID_1_4_5_0000000000000001"},
		{"era too high", "LVLID_1_3_10_0000000000000001"},
		{"negative era", "LVLID_1_3_-1_0000000000000001"},
		{"signed difficulty", "LVLID_1_+3_5_0000000000000001"},
		{"non-hex seed", "LVLID_1_3_5_000000000000000G"},
		{"short seed", "LVLID_1_3_5_1"},
		{"long seed", "LVLID_1_3_5_00000000000000001"},
		{"hex prefix seed", "LVLID_1_3_5_0x00000000000001"},
		{"empty seed", "LVLID_1_3_5_"},
		{"whitespace", " LVLID_1_3_5_0000000000000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := Parse(tc.input)
			assert.False(t, ok)
			assert.Equal(t, ID{}, id)
		})
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	_, err := New(1, 4, 0, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = New(1, 0, 10, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = New(1, -1, 0, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	assert.Panics(t, func() { MustNew(1, 0, 12, 1) })
}

func TestEquality(t *testing.T) {
	a := MustNew(1, 2, 4, 55555)
	b := MustNew(1, 2, 4, 55555)
	assert.True(t, a == b)
	assert.False(t, a == a.WithSeed(55556))
	assert.False(t, a == MustNew(2, 2, 4, 55555))
}

func TestNames(t *testing.T) {
	id := MustNew(1, 3, 0, 1)
	assert.Equal(t, "Stone Age", id.EraName())
	assert.Equal(t, "Nightmare", id.DifficultyName())
	assert.Equal(t, "Future", EraName(9))
	assert.Equal(t, "Unknown", EraName(10))
	assert.Equal(t, "Unknown", DifficultyName(-1))
}

func TestMinterDoesNotRepeat(t *testing.T) {
	m := NewMinter(12345)
	seen := make(map[uint64]bool)

	for i := 0; i < 1000; i++ {
		id, err := m.Next(1, 2)
		require.NoError(t, err)
		require.False(t, seen[id.Seed()], "seed repeated at call %d", i)
		seen[id.Seed()] = true
		assert.Equal(t, CurrentVersion, id.Version())
	}
}

func TestMinterRejectsBadDomain(t *testing.T) {
	m := NewMinter(1)
	_, err := m.Next(5, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Encode(id)) == id", prop.ForAll(
		func(version uint32, difficulty, era int, seed uint64) bool {
			id := MustNew(version, difficulty, era, seed)
			parsed, ok := Parse(id.Encode())
			return ok && parsed == id
		},
		gen.UInt32(),
		gen.IntRange(0, MaxDifficulty),
		gen.IntRange(0, MaxEra),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
