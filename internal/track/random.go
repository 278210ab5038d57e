package track

import "math/rand/v2"

// RandomSource supplies the walk's random draws. *rand.Rand satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewRandom returns a PCG source. Seed 0 picks a random seed.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
