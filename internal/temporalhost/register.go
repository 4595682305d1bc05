package temporalhost

import (
	sdkworker "go.temporal.io/sdk/worker"
)

// RegisterAll registers the diagnosis workflow and its step activity with
// a Temporal worker. Call once during worker startup before Run.
func RegisterAll(w sdkworker.Worker, acts *Activities) {
	w.RegisterWorkflow(DiagnosisWorkflow)
	w.RegisterActivity(acts.ExecuteStep)
}
