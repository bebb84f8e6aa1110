package core

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource yields uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. The sequence for a given seed
// does not change between Go releases, so generated buffers can be golden-tested.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SeedFromTime is the default seed for interactive runs.
func SeedFromTime() uint64 {
	return uint64(time.Now().UnixNano())
}
