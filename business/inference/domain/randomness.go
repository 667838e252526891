package domain

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Randomness supplies the weight jitter and enumeration picks.
type Randomness interface {
	// Jitter returns a factor in [min, max].
	Jitter(min, max float64) float64
	// Pick returns an index in [0, n).
	Pick(n int) int
}

// SeededRandomness is a Randomness safe for concurrent use.
type SeededRandomness struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandomness creates a source from seed; zero seeds from the clock.
func NewSeededRandomness(seed int64) *SeededRandomness {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededRandomness{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)|1))}
}

func (r *SeededRandomness) Jitter(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Float64()*(max-min)
}

func (r *SeededRandomness) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// FixedRandomness always returns the same factor and index.
type FixedRandomness struct {
	Factor float64
	Index  int
}

func (f FixedRandomness) Jitter(min, max float64) float64 {
	return f.Factor
}

func (f FixedRandomness) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return f.Index % n
}
