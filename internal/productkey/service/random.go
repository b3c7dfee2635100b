package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mathrand "math/rand/v2"
	"sync"
)

type cryptoSource struct{}

// NewCryptoSource returns a RandomSource backed by crypto/rand. It is the default source.
func NewCryptoSource() RandomSource {
	return &cryptoSource{}
}

// IntN draws a uniformly distributed integer in [0, n) without modulo bias.
func (s *cryptoSource) IntN(n int) (int, error) {
	if n < 1 {
		return 0, errors.New("n must be at least 1")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random number: %w", err)
	}

	return int(v.Int64()), nil
}

type seededSource struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeededSource returns a deterministic RandomSource. The same seed always yields the
// same sequence, which makes generated keys reproducible in fixtures and tests.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{
		rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IntN draws the next integer in [0, n) from the seeded sequence.
func (s *seededSource) IntN(n int) (int, error) {
	if n < 1 {
		return 0, errors.New("n must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n), nil
}
