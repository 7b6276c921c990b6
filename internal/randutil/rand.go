// Package randutil centralises how random sources are constructed so that
// every consumer of randomness in the engine is reproducible from a seed.
package randutil

import (
	"crypto/rand"
	"encoding/binary"
	randv2 "math/rand/v2"
)

const goldenGamma = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG wants two 64-bit seeds; both are derived from the single
// caller-supplied seed via a splitmix64 finaliser so call sites stay simple.
func New(seed int64) *randv2.Rand {
	u := uint64(seed)
	return randv2.New(randv2.NewPCG(splitmix64(u), splitmix64(u+goldenGamma)))
}

// NewRandom returns a *rand.Rand seeded from the operating system. Used by
// the daemon when no explicit seed is given.
func NewRandom() *randv2.Rand {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is unrecoverable; fall back to a fixed seed
		// rather than panicking in the serving path.
		return New(1)
	}
	return New(int64(binary.LittleEndian.Uint64(buf[:])))
}

func splitmix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
