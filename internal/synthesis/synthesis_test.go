package synthesis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/gen"
)

type stubClient struct {
	content string
	err     error
	lastReq *gen.Request
}

func (s *stubClient) Complete(_ context.Context, req *gen.Request) (*gen.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &gen.Response{Content: s.content}, nil
}

const wellFormed = `{
	"root_cause": "Spindle bearing wear from sustained over-torque",
	"confidence": 0.88,
	"immediate_action": "Reduce load and schedule bearing replacement",
	"source_reference": "maintenance log M001",
	"escalate": false,
	"summary": "Bearing wear is consistent with the recorded torque spikes."
}`

func TestStepRunParsesStructuredAnswer(t *testing.T) {
	client := &stubClient{content: wellFormed}
	step := NewStep(client, nil)

	state := domain.NewWorkflowState("Why is M001 failing?")
	state.RetrievedDocuments = []string{"torque log"}
	state.ReasoningNarrative = "torque spikes precede wear"

	out, err := step.Run(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, "Spindle bearing wear from sustained over-torque", out.FinalAnswer.RootCause)
	assert.InDelta(t, 0.88, out.FinalAnswer.Confidence, 1e-9)
	assert.False(t, out.FinalAnswer.Escalate)

	assert.Equal(t, gen.OpSynthesize, client.lastReq.Operation)
	assert.Contains(t, client.lastReq.User, "torque log")
	assert.Contains(t, client.lastReq.User, "torque spikes precede wear")
}

func TestStepRunStripsFencedJSON(t *testing.T) {
	client := &stubClient{content: "```json\n" + wellFormed + "\n```"}
	step := NewStep(client, nil)

	out, err := step.Run(context.Background(), domain.NewWorkflowState("q"))

	require.NoError(t, err)
	assert.InDelta(t, 0.88, out.FinalAnswer.Confidence, 1e-9)
}

func TestStepRunFallbackOnUnparseableOutput(t *testing.T) {
	client := &stubClient{content: "The root cause is probably bearing wear, escalate soon."}
	step := NewStep(client, nil)

	out, err := step.Run(context.Background(), domain.NewWorkflowState("q"))

	require.NoError(t, err, "parse failures must not abort the workflow")
	assert.Equal(t, FallbackAnswer, out.FinalAnswer)
	assert.InDelta(t, 0.3, out.FinalAnswer.Confidence, 1e-9)
	assert.True(t, out.FinalAnswer.Escalate)
}

func TestStepRunFallbackOnClientError(t *testing.T) {
	client := &stubClient{err: errors.New("provider unavailable")}
	step := NewStep(client, nil)

	out, err := step.Run(context.Background(), domain.NewWorkflowState("q"))

	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, out.FinalAnswer)
}
