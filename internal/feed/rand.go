package feed

import "math/rand/v2"

// Rand is the randomness the builders consume. *rand.Rand from math/rand/v2
// satisfies it. Implementations need not be safe for concurrent use.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a source seeded from the runtime's entropy.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic source.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
