package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnintelligible indicates that an utterance could not be turned into an order action.
var ErrUnintelligible = errors.New("could not understand the order")

// ErrUpstream indicates that an external dependency (e.g. the language model) failed.
var ErrUpstream = errors.New("upstream service error")

// ErrNotConfigured indicates that an optional collaborator was not configured.
var ErrNotConfigured = errors.New("service not configured")

// ErrInvariantViolation indicates an internal logic fault, e.g. a negative total.
// It is never recoverable by the client.
var ErrInvariantViolation = errors.New("internal invariant violated")
