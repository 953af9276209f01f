package booking

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session id resolves to nothing,
// either because it never existed or because its TTL elapsed.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ValidationError is a local, field-level failure. It blocks a workflow
// transition and is surfaced inline next to the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NetworkError wraps a failed call to an external collaborator. The
// operation is abandoned; the user may retry manually.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BusinessRuleError carries a domain rejection from a collaborator. The
// server's message is shown verbatim.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// PaymentError is a handoff failure. The draft stays at the payment step so
// the guest can retry.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string { return e.Message }
