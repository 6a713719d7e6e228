// Package random provides seed and RNG construction helpers.
//
// Stimulus generation is deterministic given a seed: every component
// that draws randomness receives a *rand.Rand owned by its caller.
// This package centralizes how those generators are created so that
// sessions can always report the seed that produced them.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand creates a seeded random number generator.
// If seed is 0, a fresh high-entropy seed is drawn so that distinct
// sessions never share a stream. The resolved seed is returned so
// callers can record it for replay.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		drawn, err := NewSeed()
		if err != nil || drawn == 0 {
			drawn = time.Now().UnixNano()
		}
		seed = drawn
	}
	return rand.New(rand.NewSource(seed)), seed
}
