package rng

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// float53 is 2^53, the largest power of two whose reciprocal spacing
// is representable when converting a random integer to a float64.
const float53 = 1 << 53

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values produced are uniformly distributed in [0, n)
// for any n > 0, and in [0, 1) for Float64.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. Used for
// real play, where run-to-run determinism is not required.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float64 in [0, 1).
func (c *cryptoSource) Float64() float64 {
	val, err := crand.Int(crand.Reader, big.NewInt(float53))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return float64(val.Int64()) / float53
}

// seededSource implements Source using math/rand with a fixed seed,
// making a whole run reproducible for simulation and tests.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a Source producing the deterministic stream
// for seed.
func NewSeededSource(seed int64) Source {
	return &seededSource{r: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a random int in [0, n) from the seeded stream.
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Float64 returns a random float64 in [0, 1) from the seeded stream.
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
