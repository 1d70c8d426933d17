package kitchen

import (
	"math/rand"
	"sync"
)

// Random is the source of randomness used by the kitchen. Tests inject scripted sources.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// lockedRandom guards a math/rand generator, which is not safe for concurrent use.
type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a goroutine-safe Random seeded with seed
func NewRandom(seed int64) Random {
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
