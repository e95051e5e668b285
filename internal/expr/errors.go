package expr

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("invalid expression")

// ParseError reports a syntax or name resolution problem at a source range.
type ParseError struct {
	Range   hcl.Range
	Message string
}

func newParseError(rng hcl.Range, msg string) *ParseError {
	return &ParseError{Range: rng, Message: msg}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Range.Start.Line, e.Range.Start.Column, e.Message)
}

// Unwrap returns ErrParse so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// fromDiagnostics converts the first error diagnostic.
func fromDiagnostics(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		var rng hcl.Range
		if d.Subject != nil {
			rng = *d.Subject
		}
		return newParseError(rng, msg)
	}
	return newParseError(hcl.Range{}, diags.Error())
}
