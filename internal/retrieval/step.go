package retrieval

import (
	"context"
	"log/slog"

	"github.com/ariadx/aria/internal/domain"
)

// Step is the retrieval workflow step. Each run is a full re-invocation of
// both sources with the original query (a retry produces a fresh ranked
// list, not an incremental refinement) and increments the state's
// iteration count so the engine can bound the retry loop.
type Step struct {
	semantic RankedSource
	keyword  RankedSource
	topK     int
	logger   *slog.Logger
}

// NewStep creates the retrieval step over the two ranked-list providers.
func NewStep(semantic, keyword RankedSource, logger *slog.Logger) *Step {
	if logger == nil {
		logger = slog.Default()
	}
	return &Step{
		semantic: semantic,
		keyword:  keyword,
		topK:     DefaultTopK,
		logger:   logger.With("component", "retrieval"),
	}
}

// Name implements the workflow step contract.
func (s *Step) Name() string { return "retrieve" }

// Run executes hybrid retrieval and updates the retrieval-owned state
// fields. A failing source degrades to an empty candidate list; with both
// sources empty the confidence is 0, which forces the engine to retry up
// to its ceiling and then continue with no evidence.
func (s *Step) Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	semantic := s.search(ctx, s.semantic, "semantic", state.Query)
	keyword := s.search(ctx, s.keyword, "keyword", state.Query)

	docs, conf := Merge(semantic, keyword, s.topK)

	state.RetrievedDocuments = docs
	state.RetrievalConfidence = conf
	state.IterationCount++

	s.logger.InfoContext(ctx, "retrieval attempt completed",
		"documents", len(docs),
		"confidence", conf,
		"iteration", state.IterationCount,
	)
	return state, nil
}

func (s *Step) search(ctx context.Context, src RankedSource, kind, query string) []string {
	if src == nil {
		return nil
	}
	docs, err := src.Search(ctx, query, s.topK)
	if err != nil {
		s.logger.WarnContext(ctx, "retrieval source failed, continuing without it",
			"source", kind, "error", err)
		return nil
	}
	return docs
}
