package checkout

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zapshift/parcel-service/internal/logx"
)

type gateway interface {
	CreateSession(context.Context, CreateSessionParams) (*Session, error)
	GetSession(context.Context, string) (*Session, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway wraps a checkout gateway with bounded exponential-backoff retries.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway checks that next is not nil and returns a RetryingGateway.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// CreateSession creates a session, retrying transient provider failures.
// The idempotency key is fixed before the first attempt so every retry
// presents the same one and the provider dedupes.
func (g *RetryingGateway) CreateSession(ctx context.Context, p CreateSessionParams) (*Session, error) {
	if p.IdempotencyKey == "" {
		p.IdempotencyKey = uuid.NewString()
	}
	return retry(ctx, g, "CreateSession", func() (*Session, error) {
		return g.next.CreateSession(ctx, p)
	})
}

// GetSession fetches a session, retrying transient provider failures.
func (g *RetryingGateway) GetSession(ctx context.Context, id string) (*Session, error) {
	return retry(ctx, g, "GetSession", func() (*Session, error) {
		return g.next.GetSession(ctx, id)
	})
}

func retry(ctx context.Context, g *RetryingGateway, method string, call func() (*Session, error)) (*Session, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		s, err := call()
		if err == nil {
			return s, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("checkout gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable treats rate limiting, provider 5xx and transport faults as
// transient; every other API error (4xx) is permanent.
func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= 500
	}
	return true
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
