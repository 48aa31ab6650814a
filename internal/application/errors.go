package application

import (
	"errors"
	"fmt"

	"lcatrace/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrScoringFailed    = errors.New("scoring failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// ScoringError is returned when the unit score of an activity could not be
// computed. It aborts the traversal that requested it.
type ScoringError struct {
	Activity domain.Key
	Method   domain.Method
	Err      error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring %s with %s: %v", e.Activity, e.Method, e.Err)
}

func (e *ScoringError) Is(target error) bool {
	return target == ErrScoringFailed
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an unknown activity or method
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
