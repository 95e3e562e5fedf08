package pendulum

import (
	"errors"
	"fmt"
)

// Validation errors returned at construction time.
var (
	// ErrInvalidMass indicates a mass that is zero, negative or NaN.
	ErrInvalidMass = errors.New("pendulum: mass must be positive")

	// ErrInvalidLength indicates a length that is zero, negative or NaN.
	ErrInvalidLength = errors.New("pendulum: length must be positive")

	// ErrInvalidGravity indicates a gravity constant that is NaN or infinite.
	ErrInvalidGravity = errors.New("pendulum: gravity must be finite")
)

// ArmError wraps a validation error with the offending arm and value.
type ArmError struct {
	Arm   int
	Field string
	Value float64
	Err   error
}

func (e *ArmError) Error() string {
	return fmt.Sprintf("arm %d: %s=%g: %v", e.Arm, e.Field, e.Value, e.Err)
}

func (e *ArmError) Unwrap() error {
	return e.Err
}
