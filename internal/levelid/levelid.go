// Package levelid encodes and decodes the compact level handle
// LVLID_{version}_{difficulty}_{era}_{seed}.
package levelid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/levelforge/internal/rng"
)

const (
	// Prefix starts every encoded identifier.
	Prefix = "LVLID"

	// CurrentVersion is stamped on identifiers minted by this build.
	CurrentVersion uint32 = 1

	// MaxDifficulty is the highest difficulty tier.
	MaxDifficulty = 3

	// MaxEra is the highest era index.
	MaxEra = 9

	seedDigits = 16
)

// ErrOutOfRange is returned when a difficulty or era is outside its domain.
var ErrOutOfRange = errors.New("levelid: field out of range")

// ID identifies a generated level. The zero value is a valid identifier
// (version 0, difficulty 0, era 0, seed 0). IDs are comparable with ==.
type ID struct {
	version    uint32
	difficulty uint8
	era        uint8
	seed       uint64
}

// New builds an identifier, rejecting out-of-range difficulty or era.
func New(version uint32, difficulty, era int, seed uint64) (ID, error) {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return ID{}, fmt.Errorf("%w: difficulty %d not in [0,%d]", ErrOutOfRange, difficulty, MaxDifficulty)
	}
	if era < 0 || era > MaxEra {
		return ID{}, fmt.Errorf("%w: era %d not in [0,%d]", ErrOutOfRange, era, MaxEra)
	}
	return ID{
		version:    version,
		difficulty: uint8(difficulty),
		era:        uint8(era),
		seed:       seed,
	}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(version uint32, difficulty, era int, seed uint64) ID {
	id, err := New(version, difficulty, era, seed)
	if err != nil {
		panic(err)
	}
	return id
}

// Version returns the identifier format version.
func (id ID) Version() uint32 { return id.version }

// Difficulty returns the difficulty tier (0-3).
func (id ID) Difficulty() int { return int(id.difficulty) }

// Era returns the era index (0-9).
func (id ID) Era() int { return int(id.era) }

// Seed returns the generation seed.
func (id ID) Seed() uint64 { return id.seed }

// WithSeed returns a copy of id with a different seed.
func (id ID) WithSeed(seed uint64) ID {
	id.seed = seed
	return id
}

// Encode returns the canonical textual form.
func (id ID) Encode() string {
	return fmt.Sprintf("%s_%d_%d_%d_%016X", Prefix, id.version, id.difficulty, id.era, id.seed)
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.Encode()
}

// EraName returns the display name of the era.
func (id ID) EraName() string {
	return EraName(int(id.era))
}

// DifficultyName returns the display name of the difficulty tier.
func (id ID) DifficultyName() string {
	return DifficultyName(int(id.difficulty))
}

// Parse decodes a textual identifier. It never panics; ok is false for any
// malformed input.
//
// The seed must be exactly 16 hexadecimal digits (either case).
func Parse(text string) (id ID, ok bool) {
	parts := strings.Split(text, "_")
	if len(parts) != 5 || parts[0] != Prefix {
		return ID{}, false
	}

	version, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ID{}, false
	}

	difficulty, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil || difficulty > MaxDifficulty {
		return ID{}, false
	}

	era, err := strconv.ParseUint(parts[3], 10, 8)
	if err != nil || era > MaxEra {
		return ID{}, false
	}

	if len(parts[4]) != seedDigits {
		return ID{}, false
	}
	seed, err := strconv.ParseUint(parts[4], 16, 64)
	if err != nil {
		return ID{}, false
	}

	return ID{
		version:    uint32(version),
		difficulty: uint8(difficulty),
		era:        uint8(era),
		seed:       seed,
	}, true
}

// Minter hands out identifiers with fresh seeds. Seeds come from an
// xorshift stream, which does not repeat within its period.
type Minter struct {
	rng     *rng.RNG
	version uint32
}

// NewMinter creates a minter seeded with entropy (time, crypto bytes, ...).
func NewMinter(entropy uint64) *Minter {
	return &Minter{
		rng:     rng.New(entropy),
		version: CurrentVersion,
	}
}

// Next returns a new identifier for the given difficulty and era.
func (m *Minter) Next(difficulty, era int) (ID, error) {
	return New(m.version, difficulty, era, m.rng.Next())
}
