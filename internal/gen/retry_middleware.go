package gen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// retryMiddleware implements retry with exponential backoff and full
// jitter. Only errors classified as transient are retried; permanent
// failures surface immediately so the calling step can apply its fallback.
type retryMiddleware struct {
	config RetryConfig
	logger *slog.Logger
}

// NewRetryMiddleware creates retry middleware with the given configuration.
// Configuration must already be validated by Config.Validate.
func NewRetryMiddleware(cfg RetryConfig) Middleware {
	rm := &retryMiddleware{
		config: cfg,
		logger: slog.Default().With("component", "gen.retry"),
	}
	return rm.middleware
}

func (r *retryMiddleware) middleware(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		// Fail fast if the context is already cancelled to avoid wasted
		// attempts.
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", errContextCancelledBeforeRetry, ctx.Err())
		default:
		}

		start := time.Now()
		var lastErr error

		for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
			if r.config.MaxElapsedTime > 0 && time.Since(start) > r.config.MaxElapsedTime {
				break
			}

			resp, err := next.Handle(ctx, req)
			if err == nil {
				return resp, nil
			}
			lastErr = err

			if !isRetryable(err) {
				return nil, err
			}
			if attempt == r.config.MaxAttempts {
				break
			}

			delay := r.backoff(attempt)
			r.logger.WarnContext(ctx, "transient generation failure, backing off",
				"operation", req.Operation,
				"attempt", attempt,
				"delay", delay,
				"error", err,
			)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", errContextCancelledDuringRetry, ctx.Err())
			}
		}

		return nil, fmt.Errorf("%w: %w", errAllRetriesExhausted, lastErr)
	})
}

// backoff computes the delay before the given attempt using exponential
// growth capped at MaxInterval, with full jitter to spread retry storms.
func (r *retryMiddleware) backoff(attempt int) time.Duration {
	interval := r.config.InitialInterval
	for i := 1; i < attempt; i++ {
		interval = time.Duration(float64(interval) * r.config.Multiplier)
		if interval >= r.config.MaxInterval {
			interval = r.config.MaxInterval
			break
		}
	}
	return time.Duration(rand.Int63n(int64(interval)) + 1)
}
