package gen

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Configuration validation errors.
var (
	errBaseURLRequired        = errors.New("base URL is required")
	errModelRequired          = errors.New("model is required")
	errMaxAttemptsInvalid     = errors.New("maxAttempts must be greater than 0")
	errInitialIntervalInvalid = errors.New("initialInterval must be greater than 0")
	errMaxIntervalInvalid     = errors.New("maxInterval must be >= initialInterval")
	errMultiplierInvalid      = errors.New("multiplier must be >= 1.0")
)

// Config holds configuration for the generation client: provider endpoint,
// credentials, resilience parameters, and observability options.
type Config struct {
	// BaseURL is the OpenAI-compatible API root, e.g.
	// "https://api.groq.com/openai/v1".
	BaseURL string `json:"base_url"`

	// Model names the chat model to request.
	Model string `json:"model"`

	// APIKey authenticates requests. Sensitive, never serialized.
	APIKey string `json:"-"`

	// APIKeyEnv names an environment variable to read the key from when
	// APIKey is empty.
	APIKeyEnv string `json:"api_key_env"`

	// HTTPTimeout bounds each underlying HTTP call.
	HTTPTimeout time.Duration `json:"http_timeout"`

	// HTTPClient overrides the default client; used by tests.
	HTTPClient *http.Client `json:"-"`

	// Retry controls the retry middleware.
	Retry RetryConfig `json:"retry"`

	// RateLimit controls the client-side token bucket.
	RateLimit RateLimitConfig `json:"rate_limit"`

	// RedactPrompts suppresses prompt text in logs.
	RedactPrompts bool `json:"redact_prompts"`
}

// RetryConfig controls retry behavior for failed generation calls.
// Exponential backoff with full jitter, bounded by attempts and elapsed time.
type RetryConfig struct {
	MaxAttempts     int           `json:"max_attempts"`
	MaxElapsedTime  time.Duration `json:"max_elapsed_time"`
	InitialInterval time.Duration `json:"initial_interval"`
	MaxInterval     time.Duration `json:"max_interval"`
	Multiplier      float64       `json:"multiplier"`
}

// RateLimitConfig controls the client-side request rate.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate. Zero disables the
	// rate-limit middleware.
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Burst is the bucket size for short spikes.
	Burst int `json:"burst"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errBaseURLRequired
	}
	if c.Model == "" {
		return errModelRequired
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("%w, got %d", errMaxAttemptsInvalid, c.Retry.MaxAttempts)
	}
	if c.Retry.InitialInterval <= 0 {
		return fmt.Errorf("%w, got %v", errInitialIntervalInvalid, c.Retry.InitialInterval)
	}
	if c.Retry.MaxInterval < c.Retry.InitialInterval {
		return fmt.Errorf("%w, MaxInterval: %v, InitialInterval: %v",
			errMaxIntervalInvalid, c.Retry.MaxInterval, c.Retry.InitialInterval)
	}
	if c.Retry.Multiplier < 1.0 {
		return fmt.Errorf("%w, got %f", errMultiplierInvalid, c.Retry.Multiplier)
	}
	return nil
}

// ResolveAPIKey returns the configured key, consulting APIKeyEnv when the
// literal key is empty.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}
