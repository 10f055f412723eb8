package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrTestNotFound   = fmt.Errorf("%w: test", ErrNotFound)

	// Validation errors
	ErrInvalidSamples   = errors.New("invalid samples")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrUnequalLengths   = fmt.Errorf("%w: samples must have equal length", ErrInvalidSamples)
	ErrInvalidOption    = errors.New("invalid option")
	ErrNonNumeric       = errors.New("non-numeric value")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, name)
}

func NewSampleCountError(test string, want string, got int) error {
	return fmt.Errorf("%w: %s expects %s samples, got %d", ErrInvalidSamples, test, want, got)
}

func NewInsufficientDataError(test string, need, got int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, test, need, got)
}

func NewOptionError(option, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidOption, option, value)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSamples) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrNonNumeric)
}
