// Package random holds the RNG capability handed to battle and catch rules.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
)

// RNG is the randomness capability injected into game rules.
type RNG interface {
	// NextUniform returns a float in [0,1).
	NextUniform() float64
	// NextIntInclusive returns an integer in [low, high].
	NextIntInclusive(low, high int) int
}

// Seeded is a deterministic RNG safe for concurrent use.
type Seeded struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewSeeded returns an RNG that replays the same sequence for the same seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewFromEntropy seeds an RNG from crypto/rand. The seed is always positive
// so it can be fed back through MONSTERDEX_GAME_SEED, where zero means "pick one".
func NewFromEntropy() (*Seeded, error) {
	seed, err := entropySeed(crand.Reader)
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed), nil
}

func entropySeed(r io.Reader) (int64, error) {
	var b [8]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("read entropy seed: %w", err)
		}
		if seed := int64(binary.BigEndian.Uint64(b[:]) &^ (1 << 63)); seed != 0 {
			return seed, nil
		}
	}
}

// Seed returns the seed the RNG was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// NextUniform implements RNG.
func (s *Seeded) NextUniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NextIntInclusive implements RNG. Reversed bounds are swapped.
func (s *Seeded) NextIntInclusive(low, high int) int {
	if high < low {
		low, high = high, low
	}
	if low == high {
		return low
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Intn(high-low+1)
}

// Scripted replays fixed values; it is meant for tests and scenario replays.
// Exhausted sequences repeat their last value, and empty ones return the
// lower bound (or 0 for uniform samples).
type Scripted struct {
	mu       sync.Mutex
	Uniforms []float64
	Ints     []int
}

// NextUniform implements RNG.
func (s *Scripted) NextUniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Uniforms) == 0 {
		return 0
	}
	value := s.Uniforms[0]
	if len(s.Uniforms) > 1 {
		s.Uniforms = s.Uniforms[1:]
	}
	return value
}

// NextIntInclusive implements RNG. Scripted values are clamped to the bounds.
func (s *Scripted) NextIntInclusive(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if high < low {
		low, high = high, low
	}
	if len(s.Ints) == 0 {
		return low
	}
	value := s.Ints[0]
	if len(s.Ints) > 1 {
		s.Ints = s.Ints[1:]
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
