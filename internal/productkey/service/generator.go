package service

import (
	"fmt"

	apperrors "github.com/nandolawson/keyforge95/internal/errors"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// DefaultMaxAttempts is the per-block draw cap used when none is configured. Every block
// accepts more than 7% of its domain, so real sources never come close to it.
const DefaultMaxAttempts = 10000

type generator struct {
	source      RandomSource
	maxAttempts int
}

// NewGenerator creates a generator drawing from source. A maxAttempts below 1 selects
// DefaultMaxAttempts.
func NewGenerator(source RandomSource, maxAttempts int) Generator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &generator{
		source:      source,
		maxAttempts: maxAttempts,
	}
}

// Generate builds a key of the requested shape. Retail keys join blocks A and C, OEM keys
// join blocks B, D and E around the OEM marker.
func (g *generator) Generate(keyType domain.KeyType) (*domain.ProductKey, error) {
	switch keyType {
	case domain.Retail:
		return g.generateRetail()
	case domain.Oem:
		return g.generateOem()
	default:
		return nil, domain.ErrInvalidKeyType
	}
}

func (g *generator) generateRetail() (*domain.ProductKey, error) {
	a, attemptsA, err := g.sampleBlock(domain.BlockA)
	if err != nil {
		return nil, err
	}

	c, attemptsC, err := g.sampleBlock(domain.BlockC)
	if err != nil {
		return nil, err
	}

	return &domain.ProductKey{
		Value:    a + domain.Separator + c,
		Type:     domain.Retail,
		Attempts: attemptsA + attemptsC,
	}, nil
}

func (g *generator) generateOem() (*domain.ProductKey, error) {
	b, err := g.blockB()
	if err != nil {
		return nil, err
	}

	d, attemptsD, err := g.sampleBlock(domain.BlockD)
	if err != nil {
		return nil, err
	}

	e, err := g.draw(domain.BlockE)
	if err != nil {
		return nil, err
	}

	return &domain.ProductKey{
		Value:    b + domain.OemMarker + d + domain.Separator + e,
		Type:     domain.Oem,
		Attempts: attemptsD + 2,
	}, nil
}

// sampleBlock draws candidates for kind until CheckBlock accepts one. Returns the block
// and the number of candidates drawn.
func (g *generator) sampleBlock(kind domain.BlockKind) (string, int, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := g.draw(kind)
		if err != nil {
			return "", attempt, err
		}

		ok, err := CheckBlock(kind, candidate)
		if err != nil {
			return "", attempt, err
		}
		if ok {
			return candidate, attempt, nil
		}
	}

	return "", g.maxAttempts, apperrors.Wrapf(
		domain.ErrAttemptsExhausted,
		"block %s after %d draws",
		kind,
		g.maxAttempts,
	)
}

// draw returns a uniformly drawn value of kind's domain, zero padded to its width.
func (g *generator) draw(kind domain.BlockKind) (string, error) {
	v, err := g.source.IntN(kind.Max() + 1)
	if err != nil {
		return "", fmt.Errorf("failed to draw block %s: %w", kind, err)
	}
	return kind.Format(v), nil
}

// blockB draws both halves of block B inside their ranges, so no retry is needed.
func (g *generator) blockB() (string, error) {
	head, err := g.source.IntN(367)
	if err != nil {
		return "", fmt.Errorf("failed to draw block B: %w", err)
	}

	tail, err := g.source.IntN(90)
	if err != nil {
		return "", fmt.Errorf("failed to draw block B: %w", err)
	}

	return fmt.Sprintf("%03d%02d", head, tail+4), nil
}
