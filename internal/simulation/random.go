package simulation

import (
	"math/rand/v2"
)

// NormalSource supplies standard normal draws (mean 0, stdev 1).
// *rand.Rand from math/rand/v2 satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Streams hands out an independent random stream per run.
type Streams interface {
	ForRun(run int) NormalSource
}

// SeededStreams derives one PCG stream per run from a single seed.
// The same seed and run index always produce the same stream.
type SeededStreams struct {
	seed uint64
}

// NewSeededStreams returns streams rooted at seed.
func NewSeededStreams(seed uint64) *SeededStreams {
	return &SeededStreams{seed: seed}
}

// Seed returns the root seed.
func (s *SeededStreams) Seed() uint64 {
	return s.seed
}

// ForRun implements Streams. The run index selects the PCG stream, so runs
// never overlap.
func (s *SeededStreams) ForRun(run int) NormalSource {
	return rand.New(rand.NewPCG(s.seed, uint64(run)))
}

// RandomSeed returns a fresh non-zero seed from the runtime's random source.
func RandomSeed() uint64 {
	for {
		if seed := rand.Uint64(); seed != 0 {
			return seed
		}
	}
}
