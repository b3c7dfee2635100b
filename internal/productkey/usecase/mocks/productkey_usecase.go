// Package mocks provides mock implementations for testing the product key consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// MockProductKeyUseCase is a mock implementation of ProductKeyUseCase for testing.
type MockProductKeyUseCase struct {
	mock.Mock
}

// Generate mocks the Generate method of ProductKeyUseCase.
func (m *MockProductKeyUseCase) Generate(ctx context.Context, keyType domain.KeyType) (*domain.ProductKey, error) {
	args := m.Called(ctx, keyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductKey), args.Error(1)
}

// GenerateBatch mocks the GenerateBatch method of ProductKeyUseCase.
func (m *MockProductKeyUseCase) GenerateBatch(
	ctx context.Context,
	keyType domain.KeyType,
	count int,
) ([]*domain.ProductKey, error) {
	args := m.Called(ctx, keyType, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProductKey), args.Error(1)
}

// Validate mocks the Validate method of ProductKeyUseCase.
func (m *MockProductKeyUseCase) Validate(ctx context.Context, key string) (domain.KeyType, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.KeyType), args.Error(1)
}
