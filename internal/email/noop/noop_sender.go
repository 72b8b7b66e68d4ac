package noop

import (
	"context"
	"log"

	"hia/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs. Used in development
// when no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendApplicationDecision(_ context.Context, toEmail, toName string, approved bool, note string) error {
	log.Printf("noop email: application decision for %s <%s> approved=%t note=%q", toName, toEmail, approved, note)
	return nil
}
