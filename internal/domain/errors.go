package domain

import "errors"

// ErrEmptyQuery indicates a diagnosis was requested for an empty query string.
var ErrEmptyQuery = errors.New("query must not be empty")

// ErrInvalidRequest indicates that a diagnosis request failed validation.
var ErrInvalidRequest = errors.New("invalid diagnosis request")
