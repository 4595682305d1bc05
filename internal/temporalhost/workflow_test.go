package temporalhost

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/engine"
	"github.com/ariadx/aria/pkg/activity"
)

// hostStep is a scripted step for exercising the durable workflow.
type hostStep struct {
	name   string
	mutate func(*domain.WorkflowState)
	err    error
}

func (h *hostStep) Name() string { return h.name }

func (h *hostStep) Run(_ context.Context, state domain.WorkflowState) (domain.WorkflowState, error) {
	if h.err != nil {
		return state, h.err
	}
	if h.mutate != nil {
		h.mutate(&state)
	}
	return state, nil
}

func hostSteps(intent domain.Intent) engine.Steps {
	return engine.Steps{
		Classify: &hostStep{name: "classify", mutate: func(s *domain.WorkflowState) {
			s.Intent = intent
			s.IntentConfidence = 0.9
		}},
		Retrieve: &hostStep{name: "retrieve", mutate: func(s *domain.WorkflowState) {
			s.RetrievedDocuments = append(s.RetrievedDocuments, "doc")
			s.RetrievalConfidence = 0.6
			s.IterationCount++
		}},
		RecordLookup: &hostStep{name: "record_lookup", mutate: func(s *domain.WorkflowState) {
			s.RecordContext = domain.RecordContext{Found: true, Data: "Machine M001 | Bearing stock: 6"}
		}},
		Reason: &hostStep{name: "reason", mutate: func(s *domain.WorkflowState) {
			s.ReasoningNarrative = "torque spikes precede wear"
		}},
		Synthesize: &hostStep{name: "synthesize", mutate: func(s *domain.WorkflowState) {
			s.FinalAnswer = domain.FinalAnswer{RootCause: "bearing wear", Confidence: 0.9}
		}},
		Escalate: &hostStep{name: "escalate", mutate: func(s *domain.WorkflowState) {
			s.Escalation = domain.EscalationReport{Priority: domain.PriorityNormal, Action: "schedule routine check"}
		}},
	}
}

func runWorkflow(t *testing.T, steps engine.Steps, req domain.DiagnosisRequest) (domain.WorkflowState, error) {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	acts := NewActivities(activity.NewBaseActivities(nil), steps)
	env.RegisterWorkflow(DiagnosisWorkflow)
	env.RegisterActivity(acts.ExecuteStep)

	env.ExecuteWorkflow(DiagnosisWorkflow, req)
	require.True(t, env.IsWorkflowCompleted(), "workflow must complete")

	if err := env.GetWorkflowError(); err != nil {
		return domain.WorkflowState{}, err
	}
	var state domain.WorkflowState
	require.NoError(t, env.GetWorkflowResult(&state))
	return state, nil
}

func TestDiagnosisWorkflowRunsToTerminalState(t *testing.T) {
	state, err := runWorkflow(t, hostSteps(domain.IntentRootCause),
		domain.DiagnosisRequest{Query: "why did M001 fail?"})
	require.NoError(t, err)

	assert.Equal(t, domain.IntentRootCause, state.Intent)
	assert.Equal(t, "torque spikes precede wear", state.ReasoningNarrative)
	assert.Equal(t, "bearing wear", state.FinalAnswer.RootCause)
	assert.Equal(t, domain.PriorityNormal, state.Escalation.Priority)
	assert.Empty(t, state.Error)
}

func TestDiagnosisWorkflowSkipsReasoningForLookups(t *testing.T) {
	state, err := runWorkflow(t, hostSteps(domain.IntentSimpleLookup),
		domain.DiagnosisRequest{Query: "what is the torque spec?"})
	require.NoError(t, err)

	assert.Empty(t, state.ReasoningNarrative)
	assert.Equal(t, "bearing wear", state.FinalAnswer.RootCause)
}

func TestDiagnosisWorkflowStepFailureDegrades(t *testing.T) {
	steps := hostSteps(domain.IntentRootCause)
	steps.Reason = &hostStep{name: "reason", err: errors.New("generator exploded")}

	state, err := runWorkflow(t, steps, domain.DiagnosisRequest{Query: "why?"})
	require.NoError(t, err, "a failing step must not fail the workflow")

	assert.Contains(t, state.Error, "generator exploded")
	assert.Equal(t, "bearing wear", state.FinalAnswer.RootCause, "later steps still run")
	assert.Equal(t, domain.IntentRootCause, state.Intent, "earlier fields survive")
}

func TestDiagnosisWorkflowRejectsInvalidRequest(t *testing.T) {
	_, err := runWorkflow(t, hostSteps(domain.IntentSimpleLookup), domain.DiagnosisRequest{})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Validation", appErr.Type())
	assert.True(t, appErr.NonRetryable())
}
