// Package randutil centralises deterministic RNG construction. The engine
// never reads global randomness: every deck shuffle and randomized agent
// draws from an injected *rand.Rand built here.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// It derives the two 64-bit PCG seeds with a splitmix-style mixer so nearby
// seeds produce unrelated sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns stream n of the given seed, independent of other streams.
// Used to fan a single seed out to workers or seats.
func Derive(seed int64, n int) *rand.Rand {
	u := uint64(seed) + uint64(n+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
