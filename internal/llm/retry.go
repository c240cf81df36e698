package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mirageweb/mirage/internal/domain"
)

// RetryConfig holds transport-level retry settings. The orchestrator never
// retries a generation; this policy lives below it, at the backend
// transport, and is disabled by default.
type RetryConfig struct {
	Enabled         bool
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetryConfig returns the retry policy defaults (disabled)
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled:         false,
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// RetryingBackend wraps a Backend with exponential-backoff retries for
// transient transport failures. Terminal generation errors (empty content,
// 4xx responses) pass through untouched.
type RetryingBackend struct {
	inner domain.Backend
	cfg   RetryConfig
}

// WithRetry wraps backend with the given retry policy. When the policy is
// disabled the backend is returned unchanged.
func WithRetry(backend domain.Backend, cfg RetryConfig) domain.Backend {
	if !cfg.Enabled {
		return backend
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 1 * time.Second
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 30 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}

	return &RetryingBackend{inner: backend, cfg: cfg}
}

func (r *RetryingBackend) Name() string {
	return r.inner.Name()
}

func (r *RetryingBackend) Model() string {
	return r.inner.Model()
}

func (r *RetryingBackend) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.Multiplier = r.cfg.Multiplier
	b.Reset()

	var wrapped backoff.BackOff = backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries))
	wrapped = backoff.WithContext(wrapped, ctx)

	var resp *domain.CompletionResponse
	err := backoff.Retry(func() error {
		var err error
		resp, err = r.inner.Complete(ctx, req)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, wrapped)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *RetryingBackend) Close() error {
	return r.inner.Close()
}

// isTransient reports whether an error is worth a transport-level retry
func isTransient(err error) bool {
	var be *domain.BackendError
	if !errors.As(err, &be) {
		return false
	}

	// Connection-level failures carry no status code
	if be.StatusCode == 0 {
		return true
	}

	switch be.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
