package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// attemptFunc performs one provider request and returns the generated text
// and the model that served it.
type attemptFunc func(ctx context.Context) (text, model string, err error)

// call is the provider-independent part of Generate: deadline, retries,
// error mapping, and the observer event.
type call struct {
	cfg      LLMConfig
	provider Provider
	model    string
	observer Observer
}

// maxRetryBackoff caps the doubling delay between attempts.
const maxRetryBackoff = 4 * time.Second

// run retries attempt until it yields non-blank text, the attempts run out,
// or the task deadline passes. Attempts are spaced by a doubling backoff; a
// backoff that would outlast the deadline ends the retries early. Exactly
// one event reaches the observer.
func (c call) run(ctx context.Context, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.taskDeadline(task))
	defer cancel()

	var (
		text, served string
		lastErr      error
	)
	attempts := 1 + max(0, c.cfg.MaxRetries)
	for i := 0; i < attempts; i++ {
		text, served, lastErr = attempt(ctx)
		if lastErr == nil && strings.TrimSpace(text) == "" {
			lastErr = ErrEmptyResponse
		}
		if lastErr == nil || ctx.Err() != nil || isPermanent(lastErr) {
			break
		}
		if i == attempts-1 || !c.wait(ctx, c.cfg.backoff(i)) {
			break
		}
	}

	event := LLMCallEvent{
		Task:      task,
		Provider:  c.provider,
		Model:     c.model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   lastErr == nil,
	}
	if lastErr == nil {
		c.observer.OnCallComplete(event)
		if served == "" {
			served = c.model
		}
		return &GenerateResponse{Text: text, Model: served, LatencyMs: event.LatencyMs}, nil
	}

	err := classify(ctx, lastErr)
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(event)
	return nil, err
}

// wait sleeps for d unless the deadline would pass first. It reports
// whether another attempt still fits.
func (c call) wait(ctx context.Context, d time.Duration) bool {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= d {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// classify maps the last attempt failure onto a package sentinel.
func classify(ctx context.Context, lastErr error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(lastErr):
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	case errors.Is(lastErr, ErrEmptyResponse):
		return ErrEmptyResponse
	case isPermanent(lastErr):
		return fmt.Errorf("%w: %v", ErrRequestRejected, lastErr)
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable), isConnectionError(err):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRequestRejected):
		return "REJECTED"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// sampling resolves temperature and token limits, letting the request
// override the task defaults.
func (c LLMConfig) sampling(req GenerateRequest) (float64, int) {
	taskCfg := c.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

// backoff returns the delay before retry n+1: RetryBackoffMs doubled per
// attempt, capped at maxRetryBackoff.
func (c LLMConfig) backoff(n int) time.Duration {
	d := time.Duration(max(0, c.RetryBackoffMs)) * time.Millisecond
	for i := 0; i < n && d < maxRetryBackoff; i++ {
		d *= 2
	}
	return min(d, maxRetryBackoff)
}

func (c LLMConfig) taskDeadline(task TaskType) time.Duration {
	return time.Duration(c.TaskTimeout(task)) * time.Millisecond
}
