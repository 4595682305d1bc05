package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// DiagnosisRequest is the input to a durable workflow execution. The
// in-process pipeline takes a bare query string; the Temporal host wraps it
// in a request so workflow inputs stay versionable.
type DiagnosisRequest struct {
	// Query is the natural-language diagnostic question.
	Query string `json:"query" validate:"required,min=1,max=4096"`

	// RequestID correlates the execution with caller-side logs.
	RequestID string `json:"request_id" validate:"omitempty,uuid4"`
}

// Validate checks the request against its field constraints.
func (r DiagnosisRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}
