// Package cache implements the content-addressed result cache: a
// normalized-query key mapped to the serialized terminal WorkflowState.
// Entries are permanent until the store is cleared; the keyspace of
// distinct user questions is assumed small relative to storage.
//
// Storage failures never reach the caller. A failing read degrades to a
// miss and a failing write is ignored, logged either way, so cache
// unavailability can never break the pipeline.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/ariadx/aria/internal/domain"
)

// Key derives the stable cache key for a query: a SHA-256 over the exact
// string. No normalization happens here; identical strings always hit and
// any difference, including whitespace or case, misses.
func Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

// Store is the raw key-value backend. Implementations must support
// concurrent reads and writes from independent queries; last-writer-wins
// on the same key is acceptable.
type Store interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores the value under the key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the backend's resources.
	Close() error
}

// ResultCache maps queries to terminal workflow states over a Store.
type ResultCache struct {
	store  Store
	logger *slog.Logger
}

// New creates a result cache over the given store.
func New(store Store, logger *slog.Logger) *ResultCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultCache{store: store, logger: logger.With("component", "cache")}
}

// Get returns the cached terminal state for the query, if any. Storage
// and decoding failures degrade to a miss.
func (c *ResultCache) Get(ctx context.Context, query string) (domain.WorkflowState, bool) {
	raw, ok, err := c.store.Get(ctx, Key(query))
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed, treating as miss", "error", err)
		return domain.WorkflowState{}, false
	}
	if !ok {
		return domain.WorkflowState{}, false
	}

	var state domain.WorkflowState
	if err := json.Unmarshal(raw, &state); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, treating as miss", "error", err)
		return domain.WorkflowState{}, false
	}
	return state, true
}

// Put stores the terminal state for the query. Failures are logged and
// ignored; the caller already has the state in hand.
func (c *ResultCache) Put(ctx context.Context, query string, state domain.WorkflowState) {
	raw, err := json.Marshal(state)
	if err != nil {
		c.logger.WarnContext(ctx, "cache write failed to encode state", "error", err)
		return
	}
	if err := c.store.Put(ctx, Key(query), raw); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "error", err)
	}
}

// Close closes the underlying store.
func (c *ResultCache) Close() error {
	return c.store.Close()
}
