package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/nandolawson/keyforge95/internal/errors"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	"github.com/nandolawson/keyforge95/internal/productkey/service"
)

// Config holds the tunables of the product key use case.
type Config struct {
	GenerationEnabled bool
	BatchMax          int
	BatchConcurrency  int
}

type productKeyUseCase struct {
	generator service.Generator
	validator service.Validator
	config    Config
	logger    *slog.Logger
}

// NewProductKeyUseCase creates the product key use case. BatchMax and BatchConcurrency
// below 1 are treated as 1.
func NewProductKeyUseCase(
	generator service.Generator,
	validator service.Validator,
	config Config,
	logger *slog.Logger,
) ProductKeyUseCase {
	if config.BatchMax < 1 {
		config.BatchMax = 1
	}
	if config.BatchConcurrency < 1 {
		config.BatchConcurrency = 1
	}
	return &productKeyUseCase{
		generator: generator,
		validator: validator,
		config:    config,
		logger:    logger,
	}
}

func (p *productKeyUseCase) Generate(ctx context.Context, keyType domain.KeyType) (*domain.ProductKey, error) {
	if err := p.checkGeneration(ctx, keyType); err != nil {
		return nil, err
	}

	key, err := p.generator.Generate(keyType)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("product key generated",
		slog.String("key_type", keyType.String()),
		slog.Int("attempts", key.Attempts),
	)

	return key, nil
}

func (p *productKeyUseCase) GenerateBatch(
	ctx context.Context,
	keyType domain.KeyType,
	count int,
) ([]*domain.ProductKey, error) {
	if count < 1 || count > p.config.BatchMax {
		return nil, apperrors.Wrapf(
			domain.ErrInvalidBatchSize,
			"count must be between 1 and %d, got %d",
			p.config.BatchMax,
			count,
		)
	}
	if err := p.checkGeneration(ctx, keyType); err != nil {
		return nil, err
	}

	keys := make([]*domain.ProductKey, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.BatchConcurrency)

	for i := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key, err := p.generator.Generate(keyType)
			if err != nil {
				return err
			}
			keys[i] = key
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("product key batch generated",
		slog.String("key_type", keyType.String()),
		slog.Int("count", count),
	)

	return keys, nil
}

func (p *productKeyUseCase) Validate(ctx context.Context, key string) (domain.KeyType, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.validator.Validate(key)
}

func (p *productKeyUseCase) checkGeneration(ctx context.Context, keyType domain.KeyType) error {
	if !p.config.GenerationEnabled {
		return domain.ErrGenerationDisabled
	}
	if err := keyType.Validate(); err != nil {
		return err
	}
	return ctx.Err()
}
