package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records product key operations.
type BusinessMetrics interface {
	// RecordOperation counts an operation. Operation examples: "generate", "generate_batch",
	// "validate". Status is one of "success", "rejected" or "error".
	RecordOperation(ctx context.Context, operation, keyType, status string)

	// RecordDuration records the operation duration in seconds.
	RecordDuration(ctx context.Context, operation, keyType string, duration time.Duration, status string)

	// RecordAttempts records how many candidates the generator drew for one key.
	RecordAttempts(ctx context.Context, keyType string, attempts int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	attemptsHisto    metric.Int64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "keyforge").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of product key operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of product key operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	attemptsHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_generation_attempts", namespace),
		metric.WithDescription("Candidates drawn per generated product key"),
		metric.WithExplicitBucketBoundaries(2, 3, 4, 6, 8, 12, 16, 24, 32, 64, 128),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attempts histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		attemptsHisto:    attemptsHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, operation, keyType, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("key_type", keyType),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	operation, keyType string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("key_type", keyType),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordAttempts(ctx context.Context, keyType string, attempts int) {
	b.attemptsHisto.Record(ctx, int64(attempts),
		metric.WithAttributes(attribute.String("key_type", keyType)),
	)
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, operation, keyType, status string) {}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	operation, keyType string,
	duration time.Duration,
	status string,
) {
}

// RecordAttempts does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordAttempts(ctx context.Context, keyType string, attempts int) {}
