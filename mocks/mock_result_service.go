package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"payproof/internal/domain"
	"payproof/internal/paydoc"
	"payproof/internal/port"
	"payproof/internal/service"
)

// MockResultService is a mock implementation of service.ResultService.
type MockResultService struct {
	mock.Mock
}

func (m *MockResultService) ParseUpload(ctx context.Context, input service.ParseUploadInput) (*domain.ParseResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockResultService) ParseFile(ctx context.Context, path string, docType paydoc.DocType) (*domain.ParseResult, error) {
	args := m.Called(ctx, path, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockResultService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockResultService) List(ctx context.Context, filter port.ResultFilter) ([]domain.ParseResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseResult), args.Error(1)
}

func (m *MockResultService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResultService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockResultService) UpdateReview(ctx context.Context, input service.UpdateReviewInput) (*domain.ParseResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}
