package gen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Model = "test-model"
	cfg.APIKey = "test-key"
	cfg.Retry = RetryConfig{
		MaxAttempts:     2,
		MaxElapsedTime:  time.Second,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2.0,
	}
	cfg.RateLimit.RequestsPerSecond = 0
	return cfg
}

func TestClientCompleteRoundTrip(t *testing.T) {
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]any{
			"model": "test-model-0825",
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"intent": "root_cause", "confidence": 0.9}`}},
			},
			"usage": map[string]any{"prompt_tokens": 42, "completion_tokens": 17},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &Request{
		Operation:   OpClassify,
		System:      "You are a manufacturing query classifier.",
		User:        "Why is machine M001 showing bearing failure?",
		Temperature: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)

	assert.JSONEq(t, `{"intent": "root_cause", "confidence": 0.9}`, resp.Content)
	assert.Equal(t, "test-model-0825", resp.Model)
	assert.Equal(t, 42, resp.Usage.PromptTokens)
	assert.Equal(t, 17, resp.Usage.CompletionTokens)
}

func TestClientCompleteProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &Request{Operation: OpClassify, User: "q"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"model": "m", "choices": []}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &Request{Operation: OpSynthesize, User: "q"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	// BaseURL and Model left empty.
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBaseURLRequired)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing model", func(c *Config) { c.Model = "" }, errModelRequired},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, errMaxAttemptsInvalid},
		{"zero interval", func(c *Config) { c.Retry.InitialInterval = 0 }, errInitialIntervalInvalid},
		{"max below initial", func(c *Config) { c.Retry.MaxInterval = time.Microsecond }, errMaxIntervalInvalid},
		{"multiplier below one", func(c *Config) { c.Retry.Multiplier = 0.5 }, errMultiplierInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://localhost")
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
