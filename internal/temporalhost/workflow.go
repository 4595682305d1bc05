// Package temporalhost runs the diagnostic workflow as a durable Temporal
// execution: the same transition function and steps as the in-process
// engine, with each step executed as an activity so a worker crash resumes
// mid-diagnosis instead of restarting it.
package temporalhost

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/engine"
)

// TaskQueue is the queue diagnosis workers poll.
const TaskQueue = "aria-diagnosis"

// maxTransitions mirrors the in-process engine's loop bound.
const maxTransitions = 32

// DiagnosisWorkflow drives a diagnosis from Classify to Done. Routing is
// computed in workflow code via the shared transition function; every step
// executes as an activity. Step failures that survive the activity retry
// policy are recorded on the state and the workflow continues, matching
// the in-process engine's degrade-and-continue contract.
func DiagnosisWorkflow(ctx workflow.Context, req domain.DiagnosisRequest) (domain.WorkflowState, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "diagnosis.v", workflow.DefaultVersion, currentVersion)

	if err := req.Validate(); err != nil {
		return domain.WorkflowState{}, temporal.NewNonRetryableApplicationError(
			"invalid diagnosis request",
			"Validation",
			err,
		)
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    2,
		},
	})

	logger := workflow.GetLogger(ctx)
	policy := engine.DefaultPolicy()
	state := domain.NewWorkflowState(req.Query)
	node := engine.NodeClassify

	for hops := 0; node != engine.NodeDone; hops++ {
		if hops >= maxTransitions {
			state.Error = fmt.Sprintf("workflow exceeded %d transitions at %s", maxTransitions, node)
			logger.Error("workflow transition bound hit", "node", node)
			break
		}

		var next domain.WorkflowState
		err := workflow.ExecuteActivity(ctx, "ExecuteStep", StepRequest{
			Node:  node,
			State: state,
		}).Get(ctx, &next)
		if err != nil {
			// Keep the prior state so a failing step cannot clear fields
			// owned by earlier steps.
			state.Error = fmt.Sprintf("%s: %v", node, err)
			logger.Warn("step failed, continuing degraded", "node", node, "error", err)
		} else {
			state = next
		}

		node = engine.Transition(node, state, policy)
	}

	return state, nil
}
