package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hia/internal/llm"
	"hia/internal/port"
)

// scriptedCompleter returns canned outcomes per call, in order.
type scriptedCompleter struct {
	calls   int
	replies []string
	errs    []error
}

func (s *scriptedCompleter) Complete(_ context.Context, _ string, _ []port.Message) (string, error) {
	i := s.calls
	s.calls++
	return s.replies[i], s.errs[i]
}

func TestRetryCompleter_SuccessFirstAttempt(t *testing.T) {
	next := &scriptedCompleter{replies: []string{"ok"}, errs: []error{nil}}
	r := llm.NewRetryCompleter(next, 2, time.Millisecond)

	reply, err := r.Complete(context.Background(), "m", nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 1, next.calls)
}

func TestRetryCompleter_TransientErrorRetried(t *testing.T) {
	transient := &llm.APIError{Model: "m", Status: 503, Body: "busy"}
	next := &scriptedCompleter{
		replies: []string{"", "ok"},
		errs:    []error{transient, nil},
	}
	r := llm.NewRetryCompleter(next, 2, time.Millisecond)

	reply, err := r.Complete(context.Background(), "m", nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 2, next.calls)
}

func TestRetryCompleter_NonTransientFailsImmediately(t *testing.T) {
	fatal := &llm.APIError{Model: "m", Status: 401, Body: "bad key"}
	next := &scriptedCompleter{replies: []string{""}, errs: []error{fatal}}
	r := llm.NewRetryCompleter(next, 3, time.Millisecond)

	_, err := r.Complete(context.Background(), "m", nil)

	var apiErr *llm.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, next.calls)
}

func TestRetryCompleter_Exhaustion(t *testing.T) {
	transient := llm.NewRateLimitError("m", errors.New("429"), 1)
	next := &scriptedCompleter{
		replies: []string{"", "", ""},
		errs:    []error{transient, transient, transient},
	}
	r := llm.NewRetryCompleter(next, 2, time.Millisecond)

	_, err := r.Complete(context.Background(), "m", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted after 3 attempts")
	var rlErr *llm.RateLimitError
	assert.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 3, next.calls)
}

func TestRetryCompleter_ContextCancelledDuringBackoff(t *testing.T) {
	transient := &llm.APIError{Model: "m", Status: 500, Body: "oops"}
	next := &scriptedCompleter{
		replies: []string{"", ""},
		errs:    []error{transient, nil},
	}
	r := llm.NewRetryCompleter(next, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Complete(ctx, "m", nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, next.calls)
}
