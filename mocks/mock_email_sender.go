package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendApplicationDecision(ctx context.Context, toEmail, toName string, approved bool, note string) error {
	args := m.Called(ctx, toEmail, toName, approved, note)
	return args.Error(0)
}
