package game

import "math/rand"

// mod returns positive modulo (Go's % can return negative).
func mod(a, b int) int {
	return ((a % b) + b) % b
}

// randRange returns a uniform value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float32()*(hi-lo)
}
