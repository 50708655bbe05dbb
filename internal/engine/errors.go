package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRate is returned when an exchange rate is zero or absent.
	ErrMissingRate = errors.New("exchange rate is missing or zero")

	// ErrInvalidRate is returned by currency conversion for a rate <= 0.
	ErrInvalidRate = errors.New("exchange rate must be positive")
)

// InvalidInputError rejects an input before any computation runs.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
