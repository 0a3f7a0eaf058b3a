package training

import (
	"math/rand/v2"
	"sync"
)

// RNG is the source of randomness for shuffles and choice generation.
// IntN returns a uniform value in [0,n) and panics if n <= 0.
type RNG interface {
	IntN(n int) int
}

// NewRNG returns a deterministic RNG seeded with seed. It is not safe for
// concurrent use.
func NewRNG(seed uint64) RNG {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type systemRNG struct{}

func (systemRNG) IntN(n int) int { return rand.IntN(n) }

// SystemRNG returns the process-wide source; safe for concurrent use.
func SystemRNG() RNG {
	return systemRNG{}
}

// LockedRNG serializes access to an RNG that is not safe for concurrent use.
type LockedRNG struct {
	mu  sync.Mutex
	rng RNG
}

func NewLockedRNG(rng RNG) *LockedRNG {
	return &LockedRNG{rng: rng}
}

func (l *LockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}
