package engine

import "github.com/ariadx/aria/internal/domain"

// Node names a state of the workflow machine.
type Node string

// Workflow nodes. Classify is initial, Done is terminal.
const (
	NodeClassify     Node = "classify"
	NodeRetrieve     Node = "retrieve"
	NodeRecordLookup Node = "record_lookup"
	NodeReason       Node = "reason"
	NodeSynthesize   Node = "synthesize"
	NodeEscalate     Node = "escalate"
	NodeDone         Node = "done"
)

// Policy holds the transition thresholds for the retrieval retry cycle.
type Policy struct {
	// MaxRetrievalAttempts is the retry ceiling on the retrieval loop.
	MaxRetrievalAttempts int `json:"max_retrieval_attempts"`

	// RetrievalConfidenceFloor is the confidence below which retrieval
	// is re-run, budget permitting.
	RetrievalConfidenceFloor float64 `json:"retrieval_confidence_floor"`
}

// DefaultPolicy returns the standard retry bounds.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetrievalAttempts:     3,
		RetrievalConfidenceFloor: 0.4,
	}
}

// Transition is the pure routing function: given the node whose step just
// ran and the resulting state, it returns the next node. The routing is
// total; every reachable value, including unrecognized intents, resolves
// to exactly one next node.
func Transition(node Node, state domain.WorkflowState, p Policy) Node {
	switch node {
	case NodeClassify:
		return NodeRetrieve

	case NodeRetrieve:
		// Retry while confidence is poor and budget remains. Exhausting
		// the budget is a deliberate degrade-and-continue, not a failure.
		if state.RetrievalConfidence < p.RetrievalConfidenceFloor &&
			state.IterationCount < p.MaxRetrievalAttempts {
			return NodeRetrieve
		}
		return NodeRecordLookup

	case NodeRecordLookup:
		// Reasoning only pays off for causal and historical questions.
		if state.Intent.NeedsReasoning() {
			return NodeReason
		}
		return NodeSynthesize

	case NodeReason:
		return NodeSynthesize

	case NodeSynthesize:
		return NodeEscalate

	case NodeEscalate:
		return NodeDone

	default:
		return NodeDone
	}
}
