// Package rng provides the randomness abstraction shared by every
// game system. A single Source is threaded through the whole run so
// that a seeded source makes an entire run reproducible.
package rng

// Source is the randomness provider for all game rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// IntBetween returns a random int in [lo, hi], inclusive on both ends.
//
// Precondition: lo <= hi.
func IntBetween(src Source, lo, hi int) int {
	if lo > hi {
		panic("rng: IntBetween called with lo > hi")
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance performs a Bernoulli trial with probability p.
// A roll is always consumed from the stream, even for degenerate p:
// p >= 1 always succeeds and p <= 0 always fails, never an error.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly random element of choices.
//
// Precondition: choices must be non-empty.
func Pick[T any](src Source, choices []T) T {
	if len(choices) == 0 {
		panic("rng: Pick called with empty slice")
	}
	return choices[src.Intn(len(choices))]
}
