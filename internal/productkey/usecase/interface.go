// Package usecase orchestrates product key generation and validation for the CLI and
// HTTP layers: feature toggling, batch generation and metrics.
package usecase

import (
	"context"

	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// ProductKeyUseCase defines the product key operations exposed to the outer layers.
type ProductKeyUseCase interface {
	// Generate creates a single key of the requested type.
	// Returns domain.ErrGenerationDisabled when generation is switched off.
	Generate(ctx context.Context, keyType domain.KeyType) (*domain.ProductKey, error)

	// GenerateBatch creates count keys concurrently. The result keeps one slot per
	// requested key, so its order is stable. Count must be between 1 and the configured
	// batch maximum.
	GenerateBatch(ctx context.Context, keyType domain.KeyType, count int) ([]*domain.ProductKey, error)

	// Validate reports the key type of a valid key. Returns domain.ErrInvalidFormat or
	// domain.ErrInvalidKey for rejected input.
	Validate(ctx context.Context, key string) (domain.KeyType, error)
}
