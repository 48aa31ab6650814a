package application

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// TraversalParams are the caller-tunable limits of a traversal
type TraversalParams struct {
	Amount   float64
	MaxLevel int     `validate:"gte=0"`
	Cutoff   float64 `validate:"gte=0,lt=1"`
}

// ValidateTraversal rejects negative depth limits, cutoffs outside [0,1)
// and non-finite amounts before any traversal work starts.
func ValidateTraversal(p TraversalParams) error {
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return &ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount must be a finite number, got %v", p.Amount),
		}
	}
	if math.IsNaN(p.Cutoff) {
		return &ValidationError{Field: "cutoff", Message: "cutoff must be a number"}
	}
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a ValidationError
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	// Report the first failure only
	e := validationErrs[0]
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "gte":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %s, got %v", e.Param(), e.Value())}
	case "lt":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be less than %s, got %v", e.Param(), e.Value())}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("validation failed (%s)", e.Tag())}
	}
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts Go field names to the names used on the command
// line and in error messages (e.g., "MaxLevel" -> "max level")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"MaxLevel": "max level",
		"Cutoff":   "cutoff",
		"Amount":   "amount",
		"activity": "activity",
		"method":   "method",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
