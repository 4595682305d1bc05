// Package classify implements the intent-classification workflow step.
// It asks the generation service to categorize the diagnostic question and
// falls back to a conservative default on any failure, so classification
// can never abort the workflow.
package classify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/gen"
)

// Fallback values applied when the generator fails or returns unparseable
// output. A mid-scale confidence keeps the fallback visible downstream
// without tripping escalation on its own.
const (
	FallbackIntent     = domain.IntentSimpleLookup
	FallbackConfidence = 0.5
)

// Temperature zero is deliberate: flaky intent detection breaks the whole
// pipeline's routing.
const classifyTemperature = 0

const systemPrompt = `You are a manufacturing query classifier.
Classify the query into exactly one of these:

- root_cause: why did something fail
- repair_procedure: how to fix something
- historical_pattern: has this happened before
- simple_lookup: specific fact or value lookup

Return valid JSON only:
{"intent": "one of above", "confidence": 0.0-1.0, "reasoning": "one line"}`

// classification is the generator's expected output shape.
type classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Step is the classification workflow step.
type Step struct {
	client gen.Client
	logger *slog.Logger
}

// NewStep creates the classification step over the given generation client.
func NewStep(client gen.Client, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{client: client, logger: logger.With("component", "classify")}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "classify" }

// Run classifies the query and sets the intent-owned state fields.
// Unrecognized intent strings are preserved verbatim; the engine routes
// them via the default branch.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	parsed := s.classify(ctx, state.Query)

	intent, recognized := domain.ParseIntent(parsed.Intent)
	if !recognized {
		s.logger.WarnContext(ctx, "unrecognized intent, default routing applies",
			"intent", parsed.Intent)
	}

	state.Intent = intent
	state.IntentConfidence = parsed.Confidence

	s.logger.InfoContext(ctx, "intent classified",
		"intent", state.Intent,
		"confidence", state.IntentConfidence,
	)
	return state, nil
}

// classify calls the generator and parses its output, substituting the
// documented fallback on any failure.
func (s *Step) classify(ctx context.Context, query string) classification {
	fallback := classification{
		Intent:     string(FallbackIntent),
		Confidence: FallbackConfidence,
		Reasoning:  "parse failed",
	}

	resp, err := s.client.Complete(ctx, &gen.Request{
		Operation:   gen.OpClassify,
		System:      systemPrompt,
		User:        query,
		Temperature: classifyTemperature,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "classification call failed, using fallback", "error", err)
		return fallback
	}

	var parsed classification
	if err := json.Unmarshal([]byte(gen.StripFences(resp.Content)), &parsed); err != nil {
		s.logger.WarnContext(ctx, "classification output unparseable, using fallback", "error", err)
		return fallback
	}
	return parsed
}
