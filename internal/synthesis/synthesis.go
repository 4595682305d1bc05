// Package synthesis implements the answer-synthesis workflow step: it asks
// the generation service for a structured diagnosis and guarantees a
// well-formed FinalAnswer on the state regardless of what comes back.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/gen"
)

const synthesizeTemperature = 0.1

// FallbackAnswer is substituted when the generator fails or returns
// unparseable output. Low confidence plus the escalate flag routes the
// degraded answer to a human instead of hiding the failure.
var FallbackAnswer = domain.FinalAnswer{
	RootCause:       "Unable to determine",
	Confidence:      0.3,
	ImmediateAction: "Manual inspection recommended",
	SourceReference: "N/A",
	Escalate:        true,
	Summary:         "Could not generate structured response, please consult maintenance team",
}

const systemPrompt = `You are ARIA, a manufacturing defect intelligence assistant.
Generate a structured response based on the analysis.
Return valid JSON only:
{
    "root_cause": "primary cause of the issue",
    "confidence": 0.0-1.0,
    "immediate_action": "what to do right now",
    "source_reference": "which data records support this",
    "escalate": true/false,
    "summary": "2-3 line summary for the technician"
}`

// Step is the synthesis workflow step.
type Step struct {
	client gen.Client
	logger *slog.Logger
}

// NewStep creates the synthesis step over the given generation client.
func NewStep(client gen.Client, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{client: client, logger: logger.With("component", "synthesis")}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "synthesize" }

// Run produces the structured final answer from everything gathered so
// far. Malformed generator output substitutes the documented fallback
// rather than propagating a parse error.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	state.FinalAnswer = s.synthesize(ctx, state)
	s.logger.InfoContext(ctx, "synthesis completed",
		"confidence", state.FinalAnswer.Confidence,
		"escalate", state.FinalAnswer.Escalate,
	)
	return state, nil
}

func (s *Step) synthesize(ctx context.Context, state domain.WorkflowState) domain.FinalAnswer {
	resp, err := s.client.Complete(ctx, &gen.Request{
		Operation: gen.OpSynthesize,
		System:    systemPrompt,
		User: fmt.Sprintf("Query: %s\n\nData: %s\n\nAnalysis: %s\n\nGenerate structured response.",
			state.Query,
			strings.Join(state.RetrievedDocuments, "\n\n"),
			state.ReasoningNarrative,
		),
		Temperature: synthesizeTemperature,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "synthesis call failed, using fallback answer", "error", err)
		return FallbackAnswer
	}

	var answer domain.FinalAnswer
	if err := json.Unmarshal([]byte(gen.StripFences(resp.Content)), &answer); err != nil {
		s.logger.WarnContext(ctx, "synthesis output unparseable, using fallback answer", "error", err)
		return FallbackAnswer
	}
	return answer
}
