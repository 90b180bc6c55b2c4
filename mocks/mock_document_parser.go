package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payproof/internal/paydoc"
)

// MockDocumentParser is a mock implementation of port.DocumentParser.
type MockDocumentParser struct {
	mock.Mock
}

func (m *MockDocumentParser) Parse(ctx context.Context, path string, docType paydoc.DocType) *paydoc.Document {
	args := m.Called(ctx, path, docType)
	return args.Get(0).(*paydoc.Document)
}
