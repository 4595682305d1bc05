// Package engine executes the diagnostic workflow: a fixed directed graph
// of named steps over a shared state, with one conditional branch (intent
// routing) and one bounded retry cycle (retrieval confidence).
//
// The graph is modeled as an explicit finite-state machine: a Node enum
// plus a pure transition function, driven by a plain loop. Keeping the
// retry and branch logic in one auditable function is the point; there is
// no generic graph runtime underneath.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/pkg/events"
)

// maxTransitions bounds the run loop. The transition function already
// bounds the only cycle via the iteration count, but a retrieve step that
// failed to advance the count would otherwise loop forever.
const maxTransitions = 32

var errStepMissing = errors.New("engine step not configured")

// Step is a single workflow step: it receives the full prior state and
// returns the full state with its own fields updated. Steps fail soft;
// a returned error is a workflow-level fault that the engine records on
// the state without aborting the run.
type Step interface {
	Name() string
	Run(ctx context.Context, state domain.WorkflowState) (domain.WorkflowState, error)
}

// Steps wires one implementation per non-terminal node.
type Steps struct {
	Classify     Step
	Retrieve     Step
	RecordLookup Step
	Reason       Step
	Synthesize   Step
	Escalate     Step
}

// validate reports the first missing step.
func (s Steps) validate() error {
	for _, entry := range []struct {
		node Node
		step Step
	}{
		{NodeClassify, s.Classify},
		{NodeRetrieve, s.Retrieve},
		{NodeRecordLookup, s.RecordLookup},
		{NodeReason, s.Reason},
		{NodeSynthesize, s.Synthesize},
		{NodeEscalate, s.Escalate},
	} {
		if entry.step == nil {
			return fmt.Errorf("%w: %s", errStepMissing, entry.node)
		}
	}
	return nil
}

// Engine drives a WorkflowState from Classify to Done.
// It is stateless across queries; a single Engine serves concurrent
// queries without locking because each run owns its state value.
type Engine struct {
	steps  Steps
	policy Policy
	sink   events.EventSink
	logger *slog.Logger
}

// New creates an engine over the given steps. A nil sink disables events.
func New(steps Steps, policy Policy, sink events.EventSink, logger *slog.Logger) (*Engine, error) {
	if err := steps.validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		steps:  steps,
		policy: policy,
		sink:   sink,
		logger: logger.With("component", "engine"),
	}, nil
}

// Run executes the workflow to the terminal node and returns the terminal
// state. There is no abort path: step errors are recorded on the state and
// the run proceeds to Done with whatever fields are populated. A partially
// correct answer plus an escalation flag beats no answer.
func (e *Engine) Run(ctx context.Context, state domain.WorkflowState) domain.WorkflowState {
	runID := uuid.New().String()
	node := NodeClassify

	for hops := 0; node != NodeDone; hops++ {
		if hops >= maxTransitions {
			state.Error = fmt.Sprintf("workflow exceeded %d transitions at %s", maxTransitions, node)
			e.logger.ErrorContext(ctx, "workflow transition bound hit", "run_id", runID, "node", node)
			break
		}

		step := e.stepFor(node)
		next, err := step.Run(ctx, state)
		if err != nil {
			// Keep the prior state so a failing step cannot clear fields
			// owned by earlier steps.
			state.Error = fmt.Sprintf("%s: %v", step.Name(), err)
			e.logger.WarnContext(ctx, "step failed, continuing degraded",
				"run_id", runID, "step", step.Name(), "error", err)
		} else {
			state = next
		}

		e.emitStepEvent(ctx, runID, step.Name(), state, err)
		node = Transition(node, state, e.policy)
	}

	e.emitCompleted(ctx, runID, state)
	return state
}

func (e *Engine) stepFor(node Node) Step {
	switch node {
	case NodeClassify:
		return e.steps.Classify
	case NodeRetrieve:
		return e.steps.Retrieve
	case NodeRecordLookup:
		return e.steps.RecordLookup
	case NodeReason:
		return e.steps.Reason
	case NodeSynthesize:
		return e.steps.Synthesize
	default:
		return e.steps.Escalate
	}
}

// stepEventPayload is the per-step event body.
type stepEventPayload struct {
	Step      string `json:"step"`
	Iteration int    `json:"iteration"`
	Error     string `json:"error,omitempty"`
}

func (e *Engine) emitStepEvent(ctx context.Context, runID, stepName string, state domain.WorkflowState, stepErr error) {
	payload := stepEventPayload{Step: stepName, Iteration: state.IterationCount}
	if stepErr != nil {
		payload.Error = stepErr.Error()
	}
	e.emit(ctx, runID, "workflow.step_completed", payload)
}

// completedEventPayload is the terminal event body.
type completedEventPayload struct {
	Intent   domain.Intent   `json:"intent"`
	Priority domain.Priority `json:"priority"`
	Error    string          `json:"error,omitempty"`
}

func (e *Engine) emitCompleted(ctx context.Context, runID string, state domain.WorkflowState) {
	e.emit(ctx, runID, "workflow.completed", completedEventPayload{
		Intent:   state.Intent,
		Priority: state.Escalation.Priority,
		Error:    state.Error,
	})
}

func (e *Engine) emit(ctx context.Context, runID, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	envelope := events.Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		Source:     "engine",
		Version:    "1.0.0",
		Timestamp:  time.Now(),
		WorkflowID: runID,
		Payload:    raw,
	}
	if err := e.sink.Append(ctx, envelope); err != nil {
		e.logger.DebugContext(ctx, "event emission failed", "type", eventType, "error", err)
	}
}
