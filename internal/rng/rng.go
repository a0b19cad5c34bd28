// Package rng provides the deterministic pseudo-random source used by level
// generation. Every random decision downstream of a level seed is drawn from
// an RNG in this package, so a seed fully determines the output.
package rng

// DefaultSeed replaces a zero seed; xorshift has an all-zero fixed point.
const DefaultSeed uint64 = 88172645463325252

// forkMask is mixed into the child state on Fork.
const forkMask uint64 = 0x9E3779B97F4A7C15

// RNG is a deterministic pseudo-random number generator (xorshift64).
// It is not safe for concurrent use; fork one per goroutine instead.
type RNG struct {
	state uint64
}

// New creates a new RNG with the given seed.
func New(seed uint64) *RNG {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &RNG{state: seed}
}

// State returns the current 64-bit state. New(r.State()) reproduces the
// exact continuation of r.
func (r *RNG) State() uint64 {
	return r.state
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a random int in [lo, hi). Returns lo when hi <= lo.
func (r *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo)
	return lo + int(r.Next()%span)
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.Range(0, n)
}

// RangeFloat returns a random float64 in [lo, hi).
func (r *RNG) RangeFloat(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float()*(hi-lo)
}

// Bool returns true with probability p.
func (r *RNG) Bool(p float64) bool {
	return r.Float() < p
}

// Shuffle permutes n elements in place using Fisher-Yates; swap exchanges
// the elements at i and j.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedChoice returns index i with probability weights[i]/sum(weights).
// Negative weights count as zero. Returns -1 if no weight is positive.
func (r *RNG) WeightedChoice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	pick := r.Float() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if pick < w {
			return i
		}
		pick -= w
		last = i
	}
	// Float rounding can leave a sliver past the final bucket.
	return last
}

// Fork advances r by one draw and returns an independent child generator.
//
// The recurrence is linear over GF(2), so after k draws the child differs
// from the parent by the k-th image of forkMask, which is never zero: the
// child never repeats the parent's value at the same draw index.
func (r *RNG) Fork() *RNG {
	r.Next()
	return New(r.state ^ forkMask)
}
