package ai

import "math/rand/v2"

// Source is the randomness the bot draws from.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a seeded generator.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
