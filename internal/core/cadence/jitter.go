package cadence

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// JitterSource draws a symmetric jitter for one request
// implementations must be deterministic in the seed
type JitterSource interface {
	Uniform(seed string, bound float64) float64
}

// SeededJitter derives a PCG stream from the SHA-256 of the seed
// every call builds its own generator so concurrent requests never share state
type SeededJitter struct{}

// Uniform draws from [-bound, bound] using the seed only
func (SeededJitter) Uniform(seed string, bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	return -bound + 2*bound*NewRand(seed).Float64()
}

// NewRand returns a generator keyed by seed
func NewRand(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	return rand.New(rand.NewPCG(binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])))
}

// FixedJitter always returns the same fraction of the bound, in [-1, 1]
type FixedJitter float64

// Uniform scales the fixed fraction by bound
func (f FixedJitter) Uniform(_ string, bound float64) float64 { return float64(f) * bound }
