package autodiff

import (
	"errors"
	"fmt"
)

// ErrStaleState is matched by every *StaleStateError.
var ErrStaleState = errors.New("stale graph state")

const (
	reasonNotEvaluated = "backward before forward"
	reasonLeafModified = "variable modified after forward"
)

// StaleStateError reports a backward pass over cached values that do not
// belong to the current assignment of the leaves.
type StaleStateError struct {
	Node   string // Operator or variable involved
	Reason string
}

// Error implements the error interface.
func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Node)
}

// Unwrap returns ErrStaleState so callers can use errors.Is.
func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}
