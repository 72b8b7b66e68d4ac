package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, fileBytes []byte, contentType string) (string, error) {
	args := m.Called(ctx, fileBytes, contentType)
	return args.String(0), args.Error(1)
}
