// Package domain defines the shared value types threaded through the
// diagnostic workflow: the per-query WorkflowState, the structured answer
// and escalation shapes, and the collaborator record context.
//
// Every workflow step receives the full prior state and returns the full
// state with only its own fields updated. Nothing in this package performs
// I/O; the types are plain data so a terminal state can be serialized into
// the result cache and reproduced byte-identically on a hit.
package domain

// Priority is the escalation verdict level.
type Priority string

const (
	// PriorityNormal means no escalation rule fired; routine handling.
	PriorityNormal Priority = "NORMAL"

	// PriorityHigh means at least one escalation rule fired and the
	// diagnosis must be handed to a human specialist.
	PriorityHigh Priority = "HIGH"
)

// RecordContext is the structured maintenance-record lookup result.
// Data is free text in the record source's fixed format (stock levels and
// open-work-order counts) that the escalation rules match against.
type RecordContext struct {
	Found bool   `json:"found"`
	Data  string `json:"data,omitempty"`
}

// FinalAnswer is the structured diagnosis produced by the synthesis step.
// The JSON tags match the synthesis generator's output contract, so a
// well-formed generator response unmarshals directly into this type.
type FinalAnswer struct {
	RootCause       string  `json:"root_cause"`
	Confidence      float64 `json:"confidence"`
	ImmediateAction string  `json:"immediate_action"`
	SourceReference string  `json:"source_reference"`
	Escalate        bool    `json:"escalate"`
	Summary         string  `json:"summary"`
}

// IsZero reports whether the answer has not been produced yet.
func (a FinalAnswer) IsZero() bool {
	return a == FinalAnswer{}
}

// EscalationReport is the deterministic verdict layered on top of the
// probabilistic answer. Reasons accumulate one entry per matched rule.
type EscalationReport struct {
	Escalate bool     `json:"escalate"`
	Reasons  []string `json:"reasons,omitempty"`
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
}

// WorkflowState is the single mutable record threaded through every step
// of the diagnostic workflow. Fields are owned by exactly one step and are
// only ever added to or overwritten by that step; no step clears a field
// owned by an earlier step.
type WorkflowState struct {
	// Query is the user's question, immutable after creation.
	Query string `json:"query"`

	// Intent and IntentConfidence are owned by the classify step.
	Intent           Intent  `json:"intent"`
	IntentConfidence float64 `json:"intent_confidence"`

	// RetrievedDocuments is relevance-ranked and unique by 100-character
	// content prefix. Owned by the retrieve step, together with
	// RetrievalConfidence and IterationCount.
	RetrievedDocuments  []string `json:"retrieved_documents,omitempty"`
	RetrievalConfidence float64  `json:"retrieval_confidence"`

	// IterationCount is incremented once per retrieval attempt and never
	// exceeds the configured retry ceiling.
	IterationCount int `json:"iteration_count"`

	// RecordContext is owned by the record-lookup step.
	RecordContext RecordContext `json:"record_context"`

	// ReasoningNarrative stays empty unless the reasoning step ran.
	ReasoningNarrative string `json:"reasoning_narrative,omitempty"`

	// FinalAnswer is owned by the synthesis step.
	FinalAnswer FinalAnswer `json:"final_answer"`

	// Escalation is owned by the escalate step.
	Escalation EscalationReport `json:"escalation"`

	// Error carries a workflow-level fault description. Setting it never
	// aborts the workflow; the state still reaches Done with whatever
	// fields are populated.
	Error string `json:"error,omitempty"`
}

// NewWorkflowState creates the zero-valued state for an incoming query.
func NewWorkflowState(query string) WorkflowState {
	return WorkflowState{Query: query}
}

// Clone returns a deep copy so concurrent readers of a terminal state
// never alias the slices owned by the workflow run.
func (s WorkflowState) Clone() WorkflowState {
	out := s
	if s.RetrievedDocuments != nil {
		out.RetrievedDocuments = make([]string, len(s.RetrievedDocuments))
		copy(out.RetrievedDocuments, s.RetrievedDocuments)
	}
	if s.Escalation.Reasons != nil {
		out.Escalation.Reasons = make([]string, len(s.Escalation.Reasons))
		copy(out.Escalation.Reasons, s.Escalation.Reasons)
	}
	return out
}
