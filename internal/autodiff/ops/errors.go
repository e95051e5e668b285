package ops

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every *DomainError.
var ErrDomain = errors.New("value outside operator domain")

// DomainError reports an operator rule evaluated outside its mathematical domain.
type DomainError struct {
	Op     Op      // Operator whose rule failed
	Rule   string  // "forward", "dA" or "dB"
	A, B   float64 // Operand values
	Reason string  // Human readable cause
}

func newDomainError(op Op, rule string, a, b float64, reason string) *DomainError {
	return &DomainError{Op: op, Rule: rule, A: a, B: b, Reason: reason}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Op.Valid() && e.Op.Arity() == 1 {
		return fmt.Sprintf("%s %s(%g): %s", e.Op, e.Rule, e.A, e.Reason)
	}
	return fmt.Sprintf("%s %s(%g, %g): %s", e.Op, e.Rule, e.A, e.B, e.Reason)
}

// Unwrap returns ErrDomain so callers can use errors.Is.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}
