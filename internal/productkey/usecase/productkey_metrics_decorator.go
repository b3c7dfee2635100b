package usecase

import (
	"context"
	"time"

	apperrors "github.com/nandolawson/keyforge95/internal/errors"
	"github.com/nandolawson/keyforge95/internal/metrics"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// Metric status values.
const (
	statusSuccess  = "success"
	statusRejected = "rejected"
	statusError    = "error"
)

// productKeyUseCaseWithMetrics decorates ProductKeyUseCase with metrics instrumentation.
type productKeyUseCaseWithMetrics struct {
	next    ProductKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewProductKeyUseCaseWithMetrics wraps a ProductKeyUseCase with metrics recording.
func NewProductKeyUseCaseWithMetrics(useCase ProductKeyUseCase, m metrics.BusinessMetrics) ProductKeyUseCase {
	return &productKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for single key generation.
func (p *productKeyUseCaseWithMetrics) Generate(
	ctx context.Context,
	keyType domain.KeyType,
) (*domain.ProductKey, error) {
	start := time.Now()
	key, err := p.next.Generate(ctx, keyType)

	if err == nil {
		p.metrics.RecordAttempts(ctx, keyType.String(), key.Attempts)
	}
	p.record(ctx, "generate", keyType.String(), start, err)

	return key, err
}

// GenerateBatch records metrics for batch generation, including the attempts of each key.
func (p *productKeyUseCaseWithMetrics) GenerateBatch(
	ctx context.Context,
	keyType domain.KeyType,
	count int,
) ([]*domain.ProductKey, error) {
	start := time.Now()
	keys, err := p.next.GenerateBatch(ctx, keyType, count)

	for _, key := range keys {
		p.metrics.RecordAttempts(ctx, keyType.String(), key.Attempts)
	}
	p.record(ctx, "generate_batch", keyType.String(), start, err)

	return keys, err
}

// Validate records metrics for key validation. The key_type label of a rejected key is
// "unknown".
func (p *productKeyUseCaseWithMetrics) Validate(ctx context.Context, key string) (domain.KeyType, error) {
	start := time.Now()
	keyType, err := p.next.Validate(ctx, key)

	label := "unknown"
	if err == nil {
		label = keyType.String()
	}
	p.record(ctx, "validate", label, start, err)

	return keyType, err
}

func (p *productKeyUseCaseWithMetrics) record(
	ctx context.Context,
	operation, keyType string,
	start time.Time,
	err error,
) {
	status := statusFor(err)
	p.metrics.RecordOperation(ctx, operation, keyType, status)
	p.metrics.RecordDuration(ctx, operation, keyType, time.Since(start), status)
}

// statusFor maps an operation result to its metric status. Caller mistakes are
// "rejected", everything else is "error".
func statusFor(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case apperrors.Is(err, apperrors.ErrInvalidInput), apperrors.Is(err, apperrors.ErrForbidden):
		return statusRejected
	default:
		return statusError
	}
}
