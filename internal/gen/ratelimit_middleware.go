package gen

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware creates client-side rate limiting with a local
// token bucket. Requests block until a token is available or the context
// is cancelled. A zero rate disables limiting entirely.
func NewRateLimitMiddleware(cfg RateLimitConfig) Middleware {
	if cfg.RequestsPerSecond <= 0 {
		return func(next Handler) Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
			return next.Handle(ctx, req)
		})
	}
}
