package temporalhost

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/engine"
	"github.com/ariadx/aria/pkg/activity"
	"github.com/ariadx/aria/pkg/events"
)

// StepRequest is the activity input: which step to run against which state.
type StepRequest struct {
	Node  engine.Node          `json:"node"`
	State domain.WorkflowState `json:"state"`
}

// Activities executes workflow steps on behalf of DiagnosisWorkflow.
// One generic activity covers the whole step set; the node in the request
// selects the implementation.
type Activities struct {
	base  activity.BaseActivities
	steps engine.Steps
}

// NewActivities wires the step set behind the activity surface.
func NewActivities(base activity.BaseActivities, steps engine.Steps) *Activities {
	return &Activities{base: base, steps: steps}
}

// ExecuteStep runs the step for the requested node and returns the updated
// state. An unknown node is a non-retryable programming error.
func (a *Activities) ExecuteStep(ctx context.Context, req StepRequest) (domain.WorkflowState, error) {
	step, ok := a.stepFor(req.Node)
	if !ok {
		return req.State, fmt.Errorf("no step registered for node %q", req.Node)
	}

	wfCtx := a.base.GetWorkflowContext(ctx)
	a.base.RecordHeartbeat(ctx, string(req.Node))

	state, err := step.Run(ctx, req.State)
	a.emitStepEvent(ctx, wfCtx, step.Name(), state, err)
	if err != nil {
		return req.State, fmt.Errorf("%s: %w", step.Name(), err)
	}
	return state, nil
}

func (a *Activities) stepFor(node engine.Node) (engine.Step, bool) {
	switch node {
	case engine.NodeClassify:
		return a.steps.Classify, true
	case engine.NodeRetrieve:
		return a.steps.Retrieve, true
	case engine.NodeRecordLookup:
		return a.steps.RecordLookup, true
	case engine.NodeReason:
		return a.steps.Reason, true
	case engine.NodeSynthesize:
		return a.steps.Synthesize, true
	case engine.NodeEscalate:
		return a.steps.Escalate, true
	default:
		return nil, false
	}
}

type stepEventPayload struct {
	Step      string `json:"step"`
	Iteration int    `json:"iteration"`
	Error     string `json:"error,omitempty"`
}

func (a *Activities) emitStepEvent(
	ctx context.Context,
	wfCtx activity.WorkflowContext,
	stepName string,
	state domain.WorkflowState,
	stepErr error,
) {
	payload := stepEventPayload{Step: stepName, Iteration: state.IterationCount}
	if stepErr != nil {
		payload.Error = stepErr.Error()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	a.base.EmitEventSafe(ctx, events.Envelope{
		ID:         uuid.New().String(),
		Type:       "workflow.step_completed",
		Source:     "temporalhost",
		Version:    "1.0.0",
		Timestamp:  time.Now(),
		WorkflowID: wfCtx.WorkflowID,
		Payload:    raw,
	}, "step completion")
}
