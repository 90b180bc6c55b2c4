package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payproof/internal/port"
)

// MockTableEngine is a mock implementation of port.TableEngine.
type MockTableEngine struct {
	mock.Mock
}

func (m *MockTableEngine) DetectTables(ctx context.Context, path string, strategy port.TableStrategy) ([]port.Table, error) {
	args := m.Called(ctx, path, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Table), args.Error(1)
}
