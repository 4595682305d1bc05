// Package records provides the structured maintenance-record lookup:
// a closed set of named operations over a maintenance dataset, the source
// contract the workflow depends on, and the lookup step itself.
//
// The operation set is deliberately closed. Lookups dispatch on typed
// operation values selected deterministically from the query; unknown
// operation names are a typed error, never a silent string fallback.
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariadx/aria/internal/domain"
)

// Operation names a structured-record lookup the workflow may request.
type Operation string

const (
	// OpMachineHistory fetches the maintenance record for one machine.
	OpMachineHistory Operation = "machine_history"

	// OpCriticalMachines lists all machines currently in critical status.
	OpCriticalMachines Operation = "critical_machines"
)

// Typed record-source errors.
var (
	// ErrUnknownOperation indicates a dispatch on an operation name
	// outside the closed set.
	ErrUnknownOperation = errors.New("unknown record operation")

	// ErrMachineNotFound indicates no record exists for the machine.
	ErrMachineNotFound = errors.New("no record found for machine")
)

// Source returns structured-record context for a query. Data is free text
// in the fixed record format the escalation rules parse.
type Source interface {
	Lookup(ctx context.Context, query string) (domain.RecordContext, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, query string) (domain.RecordContext, error)

// Lookup implements Source.
func (f SourceFunc) Lookup(ctx context.Context, query string) (domain.RecordContext, error) {
	return f(ctx, query)
}

// dispatchError wraps an unknown operation with its offending name.
func dispatchError(op Operation) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}
