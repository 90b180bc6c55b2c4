package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payproof/internal/port"
)

// MockPageRasterizer is a mock implementation of port.PageRasterizer.
type MockPageRasterizer struct {
	mock.Mock
}

func (m *MockPageRasterizer) RenderFirstPage(ctx context.Context, path string, dpi int) (*port.Page, error) {
	args := m.Called(ctx, path, dpi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Page), args.Error(1)
}
