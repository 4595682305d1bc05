package gen

import "time"

// HTTP constants.
const (
	DefaultHTTPTimeout         = 30 * time.Second
	serverErrorStatusThreshold = 500
	tooManyRequestsStatusCode  = 429
	requestTimeoutStatusCode   = 408
)

// Retry constants.
const (
	DefaultMaxAttempts     = 3
	DefaultMaxElapsedTime  = 45 * time.Second
	DefaultInitialInterval = 250 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
	DefaultMultiplier      = 2.0
)

// Rate limiting constants.
const (
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 10
)

// DefaultConfig returns production-ready configuration with sensible
// defaults. BaseURL, Model, and credentials are deployment-specific and
// must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: DefaultHTTPTimeout,
		APIKeyEnv:   "ARIA_API_KEY",
		Retry: RetryConfig{
			MaxAttempts:     DefaultMaxAttempts,
			MaxElapsedTime:  DefaultMaxElapsedTime,
			InitialInterval: DefaultInitialInterval,
			MaxInterval:     DefaultMaxInterval,
			Multiplier:      DefaultMultiplier,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
	}
}
