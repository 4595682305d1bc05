package reasoning

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

func TestStepRunSetsNarrative(t *testing.T) {
	client := &stubClient{content: "The torque spike preceding bearing wear indicates misalignment."}
	step := NewStep(client, nil)

	state := domain.NewWorkflowState("Why is M001 failing?")
	state.RetrievedDocuments = []string{"doc one", "doc two"}
	state.RecordContext = domain.RecordContext{Found: true, Data: "Machine M001 | Bearing stock: 2"}

	out, err := step.Run(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, client.content, out.ReasoningNarrative)
	assert.Equal(t, gen.OpReason, client.lastReq.Operation)
	assert.Contains(t, client.lastReq.User, "doc one")
	assert.Contains(t, client.lastReq.User, "Bearing stock: 2")
}

func TestStepRunWithoutRecordData(t *testing.T) {
	client := &stubClient{content: "narrative"}
	step := NewStep(client, nil)

	state := domain.NewWorkflowState("q")
	out, err := step.Run(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, "narrative", out.ReasoningNarrative)
	assert.Contains(t, client.lastReq.User, "no maintenance record data")
}

func TestStepRunLeavesNarrativeEmptyOnFailure(t *testing.T) {
	client := &stubClient{err: errors.New("provider unavailable")}
	step := NewStep(client, nil)

	out, err := step.Run(context.Background(), domain.NewWorkflowState("q"))

	require.NoError(t, err, "generator failures must not abort the workflow")
	assert.Empty(t, out.ReasoningNarrative)
}
