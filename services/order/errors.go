package order

import (
	"errors"
	"fmt"
)

// ValidationError marks a request the caller can fix: empty cart, unknown
// address, no products selected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a transition the ledger refuses: wrong status, wrong
// pickup token, concurrent winner.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientError marks a resource shortage at checkout time.
type InsufficientError struct {
	Resource string
	Message  string
}

func (e *InsufficientError) Error() string {
	return e.Message
}

func NewInsufficientError(resource, format string, args ...any) error {
	return &InsufficientError{Resource: resource, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsInsufficient(err error) bool {
	var ie *InsufficientError
	return errors.As(err, &ie)
}
