package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"payproof/internal/domain"
	"payproof/internal/port"
)

// MockResultRepo is a mock implementation of port.ResultRepository.
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Create(ctx context.Context, r *domain.ParseResult) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockResultRepo) List(ctx context.Context, filter port.ResultFilter) ([]domain.ParseResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseResult), args.Error(1)
}

func (m *MockResultRepo) UpdateReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

func (m *MockResultRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
