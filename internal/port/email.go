package port

import "context"

// EmailSender abstracts outbound email delivery.
type EmailSender interface {
	SendApplicationDecision(ctx context.Context, toEmail, toName string, approved bool, note string) error
}
