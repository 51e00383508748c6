package schema

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrValidation marks an input or output that does not conform to its contract.
	ErrValidation = errors.New("validation failure")
	// ErrUnsupportedMediaType is a validation failure for non-PDF uploads.
	ErrUnsupportedMediaType = fmt.Errorf("%w: unsupported media type", ErrValidation)
	// ErrGeneration marks a failure of the generation capability itself.
	ErrGeneration = errors.New("generation failure")
	// ErrTimeout marks a fetch or generation round trip that exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")
	// ErrNoPdfFound is returned by the analyze-from-link flow when extraction yields null.
	ErrNoPdfFound = errors.New("no direct pdf link found")
)

// FlowError carries the failure kind of an operation alongside its cause.
type FlowError struct {
	Op   string
	Kind error
	Err  error
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *FlowError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewValidationError(op string, err error) *FlowError {
	return &FlowError{Op: op, Kind: ErrValidation, Err: err}
}

// NewGenerationError classifies an upstream failure. Deadline and validation
// failures keep their own kind so callers can tell them apart.
func NewGenerationError(op string, err error) *FlowError {
	switch {
	case errors.Is(err, ErrValidation):
		return &FlowError{Op: op, Kind: ErrValidation, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		return &FlowError{Op: op, Kind: ErrTimeout, Err: err}
	default:
		return &FlowError{Op: op, Kind: ErrGeneration, Err: err}
	}
}

// ExitCode maps a failure kind to a process exit status for command-line callers.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnsupportedMediaType):
		return 3
	case errors.Is(err, ErrValidation):
		return 2
	case errors.Is(err, ErrTimeout):
		return 4
	case errors.Is(err, ErrGeneration):
		return 5
	case errors.Is(err, ErrNoPdfFound):
		return 6
	default:
		return 1
	}
}
