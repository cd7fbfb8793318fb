package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/config"
)

// API is the full client surface the retry decorator wraps.
type API interface {
	application.MessageStore
	application.ModalOpener
	AuthTest(ctx context.Context) (Identity, error)
}

// RetryClient retries rate-limited and transient platform failures.
// Semantic results, ErrMessageNotFound above all, pass through
// untouched: retrying those would hide lost races from the engine.
type RetryClient struct {
	inner      API
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner API, cfg config.RetryConfig) *RetryClient {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) PostMessage(ctx context.Context, channel, text string) (application.MessageRef, error) {
	return retry(r, ctx, func(ctx context.Context) (application.MessageRef, error) {
		return r.inner.PostMessage(ctx, channel, text)
	})
}

func (r *RetryClient) FetchMessage(ctx context.Context, channel string, ref application.MessageRef) (string, error) {
	return retry(r, ctx, func(ctx context.Context) (string, error) {
		return r.inner.FetchMessage(ctx, channel, ref)
	})
}

func (r *RetryClient) DeleteMessage(ctx context.Context, channel string, ref application.MessageRef) error {
	_, err := retry(r, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.inner.DeleteMessage(ctx, channel, ref)
	})
	return err
}

func (r *RetryClient) OpenView(ctx context.Context, triggerID string, view json.RawMessage) error {
	_, err := retry(r, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.inner.OpenView(ctx, triggerID, view)
	})
	return err
}

func (r *RetryClient) AuthTest(ctx context.Context) (Identity, error) {
	return retry(r, ctx, func(ctx context.Context) (Identity, error) {
		return r.inner.AuthTest(ctx)
	})
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt, err))
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, application.ErrMessageNotFound) {
		return false
	}
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.IsRetryable()
	}
	// Transport-level failures land here.
	return true
}

// Backoff calculation with exponential delay and jitter. Rate-limit
// responses carry their own delay and that wins.
func (r *RetryClient) backoff(attempt int, err error) time.Duration {
	if apiErr, ok := IsAPIError(err); ok && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}

	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
