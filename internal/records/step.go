package records

import (
	"context"
	"log/slog"

	"github.com/ariadx/aria/internal/domain"
)

// Step is the structured-record lookup workflow step. It runs
// unconditionally for every query; a query that needs no records simply
// produces a not-found context.
type Step struct {
	source Source
	logger *slog.Logger
}

// NewStep creates the record-lookup step over the given source.
func NewStep(source Source, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{source: source, logger: logger.With("component", "records")}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "record_lookup" }

// Run performs the lookup and sets the record-owned state field. Source
// failures degrade to a not-found context; the workflow continues.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	if s.source == nil {
		state.RecordContext = domain.RecordContext{Found: false}
		return state, nil
	}

	rc, err := s.source.Lookup(ctx, state.Query)
	if err != nil {
		s.logger.WarnContext(ctx, "record lookup failed, continuing without records", "error", err)
		rc = domain.RecordContext{Found: false}
	}

	state.RecordContext = rc
	s.logger.InfoContext(ctx, "record lookup completed", "found", rc.Found)
	return state, nil
}
