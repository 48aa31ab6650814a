package application

import "lcatrace/internal/domain"

// Re-export domain types for use by adapters
type (
	Key         = domain.Key
	Activity    = domain.Activity
	Exchange    = domain.Exchange
	Method      = domain.Method
	VisitRecord = domain.VisitRecord
)

// ParseKey parses a "database/code" activity reference into a ValidationError
// on failure
func ParseKey(ref string) (Key, error) {
	if err := ValidateRequired("activity", ref); err != nil {
		return Key{}, err
	}
	key, err := domain.ParseKey(ref)
	if err != nil {
		return Key{}, &ValidationError{Field: "activity", Message: err.Error()}
	}
	return key, nil
}
