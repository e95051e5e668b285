package matrix

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is matched by every *ShapeError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError reports operands whose dimensions are incompatible, or a matrix
// whose rows differ in length.
type ShapeError struct {
	Op          string // Helper that rejected the input (e.g., "matmul")
	Left, Right Shape  // Operand shapes, zero when not applicable
	Details     string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, ErrShapeMismatch, e.Details)
	}
	return fmt.Sprintf("%s: %v: %v and %v", e.Op, ErrShapeMismatch, e.Left, e.Right)
}

// Unwrap returns ErrShapeMismatch so callers can use errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
