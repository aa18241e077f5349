package usecase

import "fmt"

// InputError rejects a request before any astronomical computation runs.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("input validation: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// CalculationError means the ephemeris provider failed or returned a
// non-finite value. Never retried, never approximated.
type CalculationError struct {
	Subject string // body or operation that failed
	Err     error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation failed for %s: %v", e.Subject, e.Err)
}
func (e *CalculationError) Unwrap() error { return e.Err }

func calcErrorf(subject, format string, a ...interface{}) *CalculationError {
	return &CalculationError{Subject: subject, Err: fmt.Errorf(format, a...)}
}

// ValidationError means the assembled chart violated an internal invariant.
// This is a defect, not bad input; it is surfaced loudly and never downgraded.
type ValidationError struct {
	Check  string // which invariant failed
	Entity string // which body, angle, or house
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("output invariant %s violated by %s: %s", e.Check, e.Entity, e.Detail)
}
