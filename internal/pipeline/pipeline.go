// Package pipeline is the single entry point for callers: it validates the
// query, consults the result cache, and runs the workflow engine on a miss.
// Callers see one call and one terminal state; the step graph, retry cycle,
// and cache are internal.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ariadx/aria/internal/cache"
	"github.com/ariadx/aria/internal/classify"
	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/engine"
	"github.com/ariadx/aria/internal/escalation"
	"github.com/ariadx/aria/internal/gen"
	"github.com/ariadx/aria/internal/reasoning"
	"github.com/ariadx/aria/internal/records"
	"github.com/ariadx/aria/internal/retrieval"
	"github.com/ariadx/aria/internal/synthesis"
	"github.com/ariadx/aria/pkg/events"
)

var (
	errRunnerRequired = errors.New("pipeline: runner is required")
	errCacheRequired  = errors.New("pipeline: result cache is required")
)

// Runner executes a workflow state to its terminal form.
// *engine.Engine is the production implementation.
type Runner interface {
	Run(ctx context.Context, state domain.WorkflowState) domain.WorkflowState
}

// Pipeline answers diagnostic queries, serving repeats from the cache.
type Pipeline struct {
	runner  Runner
	results *cache.ResultCache
	logger  *slog.Logger
}

// New creates a pipeline over a runner and a result cache.
func New(runner Runner, results *cache.ResultCache, logger *slog.Logger) (*Pipeline, error) {
	if runner == nil {
		return nil, errRunnerRequired
	}
	if results == nil {
		return nil, errCacheRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		runner:  runner,
		results: results,
		logger:  logger.With("component", "pipeline"),
	}, nil
}

// Run answers a query. A cached terminal state is returned as-is with no
// collaborator involvement; otherwise the workflow runs end to end and its
// terminal state is stored best-effort before being returned.
//
// The only error path is request validation. Collaborator failures during
// the run surface as degraded fields on the returned state, never as an
// error here.
func (p *Pipeline) Run(ctx context.Context, query string) (domain.WorkflowState, error) {
	req := domain.DiagnosisRequest{Query: query, RequestID: uuid.New().String()}
	if err := req.Validate(); err != nil {
		return domain.WorkflowState{}, err
	}

	if state, ok := p.results.Get(ctx, query); ok {
		p.logger.InfoContext(ctx, "cache hit", "request_id", req.RequestID)
		return state, nil
	}

	p.logger.InfoContext(ctx, "cache miss, running workflow", "request_id", req.RequestID)
	state := p.runner.Run(ctx, domain.NewWorkflowState(query))
	p.results.Put(ctx, query, state)
	return state, nil
}

// Close releases the cache backend.
func (p *Pipeline) Close() error {
	return p.results.Close()
}

// Deps are the collaborators needed to assemble the production engine.
type Deps struct {
	Client     gen.Client
	Corpus     *retrieval.Corpus
	Records    records.Source
	Escalation escalation.Config
	Policy     engine.Policy
	Sink       events.EventSink
	Logger     *slog.Logger
}

// BuildSteps wires the six workflow steps from the collaborators. The
// corpus contributes both retrieval sources; the bigram ranker stands in
// for a vector index and the token ranker for keyword search.
func BuildSteps(d Deps) engine.Steps {
	return engine.Steps{
		Classify:     classify.NewStep(d.Client, d.Logger),
		Retrieve:     retrieval.NewStep(d.Corpus.LexicalSource(), d.Corpus.KeywordSource(), d.Logger),
		RecordLookup: records.NewStep(d.Records, d.Logger),
		Reason:       reasoning.NewStep(d.Client, d.Logger),
		Synthesize:   synthesis.NewStep(d.Client, d.Logger),
		Escalate:     escalation.NewStep(d.Escalation, d.Logger),
	}
}

// BuildEngine assembles the in-process engine over BuildSteps.
func BuildEngine(d Deps) (*engine.Engine, error) {
	return engine.New(BuildSteps(d), d.Policy, d.Sink, d.Logger)
}
