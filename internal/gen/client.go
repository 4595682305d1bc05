package gen

import (
	"context"
	"fmt"
	"log/slog"
)

// Client is the generation interface the workflow steps consume.
// Implementations must be safe for concurrent use by independent queries.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// client wires the middleware pipeline around the core HTTP handler.
// Order: logging (outermost) → rate limit → retry → HTTP.
type client struct {
	handler Handler
}

// NewClient creates a generation client from the given configuration.
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}

	handler := Chain(
		newHTTPHandler(cfg),
		NewLoggingMiddleware(slog.Default(), cfg.RedactPrompts),
		NewRateLimitMiddleware(cfg.RateLimit),
		NewRetryMiddleware(cfg.Retry),
	)

	return &client{handler: handler}, nil
}

// Complete implements Client.
func (c *client) Complete(ctx context.Context, req *Request) (*Response, error) {
	return c.handler.Handle(ctx, req)
}
