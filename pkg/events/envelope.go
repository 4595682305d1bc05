// Package events provides the generic event infrastructure for workflow
// observability. It defines the Envelope type wrapping step events with
// consistent metadata and the EventSink interface for event delivery.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Envelope wraps workflow step events with consistent metadata.
// The envelope pattern keeps payload schemas free to evolve per event type
// while routing, correlation, and versioning stay uniform.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing.
	// Examples: "workflow.step_completed", "workflow.completed".
	Type string `json:"type"`

	// Source identifies the component that emitted this event.
	Source string `json:"source"`

	// Version enables schema evolution, starting at "1.0.0".
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// WorkflowID identifies the workflow run that triggered this event.
	WorkflowID string `json:"workflow_id"`

	// Payload contains the event data as JSON; schema varies by Type.
	Payload json.RawMessage `json:"payload"`
}

// EventSink delivers events to downstream consumers. Implementations must
// return quickly and tolerate duplicates; events are important for
// observability but never critical for correctness, so callers do not fail
// their primary operation on sink errors.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null EventSink for tests or when events are disabled.
type NoOpEventSink struct{}

// Append implements EventSink with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error { return nil }

// NewNoOpEventSink creates a no-op event sink.
func NewNoOpEventSink() EventSink { return &NoOpEventSink{} }

// SlogSink writes each event as a structured log record. It is the default
// sink for the CLI, where a log line per step is the whole audit trail.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink logging through the given logger.
// A nil logger falls back to slog.Default.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger.With("component", "events")}
}

// Append implements EventSink by logging the envelope.
func (s *SlogSink) Append(ctx context.Context, envelope Envelope) error {
	s.logger.InfoContext(ctx, "event",
		"event_id", envelope.ID,
		"type", envelope.Type,
		"source", envelope.Source,
		"workflow_id", envelope.WorkflowID,
		"payload", string(envelope.Payload),
	)
	return nil
}
