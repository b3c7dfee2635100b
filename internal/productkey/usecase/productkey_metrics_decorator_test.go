package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	"github.com/nandolawson/keyforge95/internal/productkey/usecase"
	usecaseMocks "github.com/nandolawson/keyforge95/internal/productkey/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, operation, keyType, status string) {
	m.Called(ctx, operation, keyType, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	operation, keyType string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, operation, keyType, duration, status)
}

func (m *mockBusinessMetrics) RecordAttempts(ctx context.Context, keyType string, attempts int) {
	m.Called(ctx, keyType, attempts)
}

func expectOperation(m *mockBusinessMetrics, ctx context.Context, operation, keyType, status string) {
	m.On("RecordOperation", ctx, operation, keyType, status).Return().Once()
	m.On("RecordDuration", ctx, operation, keyType, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestProductKeyUseCaseWithMetrics_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Generate success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductKeyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

		key := &domain.ProductKey{Value: "334-7777777", Type: domain.Retail, Attempts: 5}
		mockNext.On("Generate", ctx, domain.Retail).Return(key, nil).Once()
		mockMetrics.On("RecordAttempts", ctx, "retail", 5).Return().Once()
		expectOperation(mockMetrics, ctx, "generate", "retail", "success")

		res, err := uc.Generate(ctx, domain.Retail)
		assert.NoError(t, err)
		assert.Equal(t, key, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Generate disabled is rejected", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductKeyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Generate", ctx, domain.Oem).Return(nil, domain.ErrGenerationDisabled).Once()
		expectOperation(mockMetrics, ctx, "generate", "oem", "rejected")

		res, err := uc.Generate(ctx, domain.Oem)
		assert.ErrorIs(t, err, domain.ErrGenerationDisabled)
		assert.Nil(t, res)
		mockMetrics.AssertNotCalled(t, "RecordAttempts", mock.Anything, mock.Anything, mock.Anything)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Generate internal failure is error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductKeyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Generate", ctx, domain.Retail).Return(nil, domain.ErrAttemptsExhausted).Once()
		expectOperation(mockMetrics, ctx, "generate", "retail", "error")

		_, err := uc.Generate(ctx, domain.Retail)
		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestProductKeyUseCaseWithMetrics_GenerateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("GenerateBatch success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductKeyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

		keys := []*domain.ProductKey{
			{Value: "111-1111111", Type: domain.Retail, Attempts: 2},
			{Value: "334-7777777", Type: domain.Retail, Attempts: 7},
		}
		mockNext.On("GenerateBatch", ctx, domain.Retail, 2).Return(keys, nil).Once()
		mockMetrics.On("RecordAttempts", ctx, "retail", 2).Return().Once()
		mockMetrics.On("RecordAttempts", ctx, "retail", 7).Return().Once()
		expectOperation(mockMetrics, ctx, "generate_batch", "retail", "success")

		res, err := uc.GenerateBatch(ctx, domain.Retail, 2)
		assert.NoError(t, err)
		assert.Equal(t, keys, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GenerateBatch invalid size", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductKeyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GenerateBatch", ctx, domain.Oem, 0).Return(nil, domain.ErrInvalidBatchSize).Once()
		expectOperation(mockMetrics, ctx, "generate_batch", "oem", "rejected")

		res, err := uc.GenerateBatch(ctx, domain.Oem, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidBatchSize)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})
}

func TestProductKeyUseCaseWithMetrics_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		key           string
		keyType       domain.KeyType
		err           error
		expectedLabel string
		expectedState string
	}{
		{
			name:          "Validate valid",
			key:           "33693-OEM-0000000-00000",
			keyType:       domain.Oem,
			expectedLabel: "oem",
			expectedState: "success",
		},
		{
			name:          "Validate invalid key",
			key:           "111-1111112",
			err:           domain.ErrInvalidKey,
			expectedLabel: "unknown",
			expectedState: "rejected",
		},
		{
			name:          "Validate invalid format",
			key:           "0-0",
			err:           domain.ErrInvalidFormat,
			expectedLabel: "unknown",
			expectedState: "rejected",
		},
		{
			name:          "Validate internal failure",
			key:           "000-0000000",
			err:           errors.New("boom"),
			expectedLabel: "unknown",
			expectedState: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNext := &usecaseMocks.MockProductKeyUseCase{}
			mockMetrics := &mockBusinessMetrics{}
			uc := usecase.NewProductKeyUseCaseWithMetrics(mockNext, mockMetrics)

			mockNext.On("Validate", ctx, tt.key).Return(tt.keyType, tt.err).Once()
			expectOperation(mockMetrics, ctx, "validate", tt.expectedLabel, tt.expectedState)

			keyType, err := uc.Validate(ctx, tt.key)
			assert.Equal(t, tt.keyType, keyType)
			assert.Equal(t, tt.err, err)
			mockNext.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}
