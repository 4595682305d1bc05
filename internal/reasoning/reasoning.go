// Package reasoning implements the optional evidence-reasoning workflow
// step. It only runs for causal and historical intents; a second round of
// evidence synthesis buys nothing for a simple factual lookup.
package reasoning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/gen"
)

// A little sampling freedom helps the narrative connect evidence; routing
// correctness does not depend on this step.
const reasonTemperature = 0.2

const systemPrompt = "You are a senior manufacturing engineer. " +
	"Analyze the machine data and identify failure patterns. " +
	"Think step by step and be specific."

// Step is the reasoning workflow step.
type Step struct {
	client gen.Client
	logger *slog.Logger
}

// NewStep creates the reasoning step over the given generation client.
func NewStep(client gen.Client, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{client: client, logger: logger.With("component", "reasoning")}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "reason" }

// Run reasons over the retrieved documents and record context and sets the
// narrative. On any generator failure the narrative stays empty and the
// workflow continues; synthesis works from the raw evidence alone.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	recordText := "no maintenance record data"
	if state.RecordContext.Found {
		recordText = state.RecordContext.Data
	}

	resp, err := s.client.Complete(ctx, &gen.Request{
		Operation: gen.OpReason,
		System:    systemPrompt,
		User: fmt.Sprintf("Query: %s\n\nMachine Data:\n%s\n\nMaintenance Records:\n%s",
			state.Query,
			strings.Join(state.RetrievedDocuments, "\n\n"),
			recordText,
		),
		Temperature: reasonTemperature,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "reasoning call failed, continuing without narrative", "error", err)
		return state, nil
	}

	state.ReasoningNarrative = resp.Content
	s.logger.InfoContext(ctx, "reasoning completed", "narrative_len", len(state.ReasoningNarrative))
	return state, nil
}
