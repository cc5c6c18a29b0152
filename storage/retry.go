package storage

import (
	"context"
	"time"

	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/resilience"
)

// retryBackend re-attempts transient failures of the wrapped backend.
// Missing items, refused names and an inert backend fail at once.
type retryBackend struct {
	Backend
	policy resilience.RetryConfig
}

// withRetry wraps b when cfg allows more than one attempt.
func withRetry(b Backend, cfg RetryConfig, log *logger.Logger) Backend {
	if cfg.Attempts <= 1 {
		return b
	}
	policy := resilience.DefaultRetryConfig()
	policy.MaxAttempts = cfg.Attempts
	policy.InitialBackoff = cfg.Backoff
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Warn("retrying storage call", map[string]interface{}{
			logger.FieldBackend: b.Name(),
			"attempt":           attempt,
			"wait":              wait.String(),
			logger.FieldError:   err.Error(),
		})
	}
	return &retryBackend{Backend: b, policy: policy}
}

func (r *retryBackend) Put(ctx context.Context, name string, data []byte) error {
	return resilience.Retry(ctx, r.policy, func(ctx context.Context) error {
		return r.Backend.Put(ctx, name, data)
	})
}

func (r *retryBackend) Get(ctx context.Context, name string) ([]byte, error) {
	return resilience.RetryValue(ctx, r.policy, func(ctx context.Context) ([]byte, error) {
		return r.Backend.Get(ctx, name)
	})
}

func (r *retryBackend) Delete(ctx context.Context, name string) error {
	return resilience.Retry(ctx, r.policy, func(ctx context.Context) error {
		return r.Backend.Delete(ctx, name)
	})
}

func (r *retryBackend) ListPage(ctx context.Context, req PageRequest) (Page, error) {
	return resilience.RetryValue(ctx, r.policy, func(ctx context.Context) (Page, error) {
		return r.Backend.ListPage(ctx, req)
	})
}
