package domain

// Intent represents the classified category of a diagnostic question.
// It drives routing after the structured-record lookup: causal and
// historical questions pass through the reasoning step, everything else
// goes straight to synthesis.
type Intent string

// Recognized intent values. Any other string routes via the default branch.
const (
	// IntentRootCause asks why something failed.
	IntentRootCause Intent = "root_cause"

	// IntentRepairProcedure asks how to fix something.
	IntentRepairProcedure Intent = "repair_procedure"

	// IntentHistoricalPattern asks whether a failure has happened before.
	IntentHistoricalPattern Intent = "historical_pattern"

	// IntentSimpleLookup asks for a specific fact or value. Also the
	// classifier's fallback when it cannot parse its own output.
	IntentSimpleLookup Intent = "simple_lookup"
)

// ParseIntent maps a raw classifier string to an Intent. The boolean
// reports whether the value is one of the four recognized intents;
// unrecognized values are preserved verbatim so the terminal state shows
// what the classifier actually said.
func ParseIntent(raw string) (Intent, bool) {
	switch Intent(raw) {
	case IntentRootCause, IntentRepairProcedure, IntentHistoricalPattern, IntentSimpleLookup:
		return Intent(raw), true
	}
	return Intent(raw), false
}

// NeedsReasoning reports whether the intent requires the reasoning step.
// Unrecognized intents never do; the routing is total and defaults to
// skipping reasoning.
func (i Intent) NeedsReasoning() bool {
	return i == IntentRootCause || i == IntentHistoricalPattern
}
