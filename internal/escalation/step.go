package escalation

import (
	"context"
	"log/slog"

	"github.com/ariadx/aria/internal/domain"
)

// Step is the escalation workflow step wrapping the pure evaluator.
type Step struct {
	config Config
	logger *slog.Logger
}

// NewStep creates the escalation step with the given policy thresholds.
func NewStep(cfg Config, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{config: cfg, logger: logger.With("component", "escalation")}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "escalate" }

// Run evaluates the escalation rules and sets the verdict on the state.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	state.Escalation = Evaluate(state.FinalAnswer, state.RecordContext, s.config)
	s.logger.InfoContext(ctx, "escalation evaluated",
		"priority", state.Escalation.Priority,
		"reasons", state.Escalation.Reasons,
	)
	return state, nil
}
