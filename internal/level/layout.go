package level

import "sort"

// Point is a tile coordinate. X grows to the right and Y grows downward,
// so the tile "below" (x, y) is (x, y+1).
type Point struct {
	X, Y int
}

// P is a shorthand constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Below returns the point directly beneath p.
func (p Point) Below() Point {
	return Point{X: p.X, Y: p.Y + 1}
}

// GroupID identifies a structural group of destructible tiles.
type GroupID int32

// Destructible describes one destructible tile.
type Destructible struct {
	Material    Material
	Group       GroupID
	LoadBearing bool // Tiles resting on this one belong to a dependent structure
}

// Zone tags the half-open column range [StartX, EndX).
type Zone struct {
	Kind   ZoneKind
	StartX int
	EndX   int

	// HeavyDestruction marks zones whose structures are built from
	// materials the starting weapon cannot break.
	HeavyDestruction bool
}

// Width returns the number of columns in the zone.
func (z Zone) Width() int {
	return z.EndX - z.StartX
}

// Contains reports whether column x lies in the zone.
func (z Zone) Contains(x int) bool {
	return x >= z.StartX && x < z.EndX
}

// Layout is the tile grid of a level.
// Tiles are stored in row-major order: index = y*Width + x.
type Layout struct {
	Width  int
	Height int
	Tiles  []Collision

	// Destructibles is keyed by tile index. Every CollisionDestructible tile
	// should have an entry; a missing entry reads as MaterialNone.
	Destructibles map[int]Destructible

	Zones []Zone
	Start Point
	Goal  Point
}

// NewLayout creates an empty layout of the given dimensions.
func NewLayout(w, h int) Layout {
	return Layout{
		Width:         w,
		Height:        h,
		Tiles:         make([]Collision, w*h),
		Destructibles: make(map[int]Destructible),
	}
}

// Index converts a coordinate to a flat array index.
func (l *Layout) Index(x, y int) int {
	return y*l.Width + x
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (l *Layout) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// At returns the collision class at (x, y). Out-of-bounds coordinates and
// a short Tiles slice read as CollisionNone.
func (l *Layout) At(x, y int) Collision {
	if !l.InBounds(x, y) {
		return CollisionNone
	}
	i := l.Index(x, y)
	if i >= len(l.Tiles) {
		return CollisionNone
	}
	return l.Tiles[i]
}

// Set sets the collision class at (x, y). Out-of-bounds writes are ignored.
func (l *Layout) Set(x, y int, c Collision) {
	if l.InBounds(x, y) {
		l.Tiles[l.Index(x, y)] = c
	}
}

// SetDestructible places a destructible tile at (x, y).
func (l *Layout) SetDestructible(x, y int, d Destructible) {
	if !l.InBounds(x, y) {
		return
	}
	i := l.Index(x, y)
	l.Tiles[i] = CollisionDestructible
	l.Destructibles[i] = d
}

// Clear removes whatever is at (x, y), including any destructible entry.
func (l *Layout) Clear(x, y int) {
	if !l.InBounds(x, y) {
		return
	}
	i := l.Index(x, y)
	l.Tiles[i] = CollisionNone
	delete(l.Destructibles, i)
}

// DestructibleAt returns the destructible entry at (x, y). ok is false when
// the tile is not destructible.
func (l *Layout) DestructibleAt(x, y int) (Destructible, bool) {
	if l.At(x, y) != CollisionDestructible {
		return Destructible{}, false
	}
	d, ok := l.Destructibles[l.Index(x, y)]
	if !ok {
		return Destructible{Material: MaterialNone}, true
	}
	return d, true
}

// Point returns the coordinate of a tile index.
func (l *Layout) Point(index int) Point {
	if l.Width <= 0 {
		return Point{}
	}
	return Point{X: index % l.Width, Y: index / l.Width}
}

// DestructibleIndices returns the destructible table keys that address a
// tile, in ascending order. Keys outside the grid are skipped.
func (l *Layout) DestructibleIndices() []int {
	keys := make([]int, 0, len(l.Destructibles))
	for k := range l.Destructibles {
		if k >= 0 && k < len(l.Tiles) {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}

// ZoneAt returns the zone containing column x.
func (l *Layout) ZoneAt(x int) (Zone, bool) {
	for _, z := range l.Zones {
		if z.Contains(x) {
			return z, true
		}
	}
	return Zone{}, false
}

// CountTiles returns how many tiles have collision class c.
func (l *Layout) CountTiles(c Collision) int {
	count := 0
	for _, t := range l.Tiles {
		if t == c {
			count++
		}
	}
	return count
}

// ColumnHasGround reports whether any tile in column x is ground-type.
func (l *Layout) ColumnHasGround(x int) bool {
	for y := 0; y < l.Height; y++ {
		if l.At(x, y).IsGround() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() Layout {
	tiles := make([]Collision, len(l.Tiles))
	copy(tiles, l.Tiles)
	destructibles := make(map[int]Destructible, len(l.Destructibles))
	for k, v := range l.Destructibles {
		destructibles[k] = v
	}
	zones := make([]Zone, len(l.Zones))
	copy(zones, l.Zones)
	return Layout{
		Width:         l.Width,
		Height:        l.Height,
		Tiles:         tiles,
		Destructibles: destructibles,
		Zones:         zones,
		Start:         l.Start,
		Goal:          l.Goal,
	}
}
