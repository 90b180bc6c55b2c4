package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payproof/internal/port"
)

// MockTextEngine is a mock implementation of port.TextEngine.
type MockTextEngine struct {
	mock.Mock
}

func (m *MockTextEngine) ReadText(ctx context.Context, path string) ([]port.PageText, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.PageText), args.Error(1)
}
