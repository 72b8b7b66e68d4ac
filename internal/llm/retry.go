package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"hia/internal/port"
)

// RetryCompleter decorates a ChatCompleter with bounded retries on transient
// failures, using linearly increasing backoff (attempt * baseDelay).
// Non-transient errors fail immediately. Model fallback is a separate concern
// handled by the vision extraction path, not here.
type RetryCompleter struct {
	next       port.ChatCompleter
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryCompleter wraps next with up to maxRetries additional attempts.
func NewRetryCompleter(next port.ChatCompleter, maxRetries int, baseDelay time.Duration) *RetryCompleter {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &RetryCompleter{next: next, maxRetries: maxRetries, baseDelay: baseDelay}
}

func (r *RetryCompleter) Complete(ctx context.Context, model string, messages []port.Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * r.baseDelay
			log.Printf("llm.RetryCompleter: attempt %d/%d for %s after %s (last error: %v)",
				attempt+1, r.maxRetries+1, model, backoff, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		reply, err := r.next.Complete(ctx, model, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("retries exhausted after %d attempts: %w", r.maxRetries+1, lastErr)
}
