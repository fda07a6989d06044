// Package rng defines the randomness capability consumed by the simulation core.
//
// The core never owns a random source. Drivers construct one (usually with New)
// and pass it explicitly into every call that needs randomness, which keeps each
// step and each evolution round reproducible from a fixed seed.
package rng

import "math/rand"

// Source produces uniformly distributed values in [0, 1) on demand.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// New returns a seeded math/rand generator.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Range returns a value in [lo, hi] from a single draw.
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Bool returns true with probability 0.5.
func Bool(src Source) bool {
	return src.Float64() < 0.5
}

// Intn returns a value in [0, n). Panics if n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Sequence replays a fixed list of values, cycling when exhausted.
// Useful for tests that need exact control over every draw.
type Sequence struct {
	Values []float64
	next   int
}

// Float64 returns the next value in the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
