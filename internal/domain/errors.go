package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported by the tax engine. Use errors.Is against these.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnknownJurisdiction  = errors.New("unknown jurisdiction")
	ErrInvalidBracketTable  = errors.New("invalid bracket table")
	ErrSolverDidNotConverge = errors.New("solver did not converge")
)

// CalculationError describes a failed engine operation. It matches its Kind
// and its Cause under errors.Is.
type CalculationError struct {
	Kind      error
	Operation string
	Message   string
	Cause     error
}

// NewCalculationError builds a CalculationError with a formatted message.
func NewCalculationError(kind error, operation, format string, args ...any) *CalculationError {
	return &CalculationError{
		Kind:      kind,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
	}
}

func (e *CalculationError) Error() string {
	msg := e.Operation + ": " + e.Message
	if e.Kind != nil {
		msg = e.Operation + ": " + e.Kind.Error() + ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CalculationError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
