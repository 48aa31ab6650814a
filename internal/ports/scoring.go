package ports

import "lcatrace/internal/domain"

// UnitScoreProvider computes the impact of one unit of an activity's
// reference product. Calls may run a linear solve and are expensive.
type UnitScoreProvider interface {
	UnitScore(key domain.Key, method domain.Method) (float64, error)
}

// UnitScoreFunc adapts a function to UnitScoreProvider
type UnitScoreFunc func(key domain.Key, method domain.Method) (float64, error)

// UnitScore calls f(key, method)
func (f UnitScoreFunc) UnitScore(key domain.Key, method domain.Method) (float64, error) {
	return f(key, method)
}

// ScoreKey identifies a memoized unit score
type ScoreKey struct {
	Activity domain.Key
	Method   domain.Method
}

// ScoreCache memoizes unit scores
type ScoreCache interface {
	Get(key ScoreKey) (float64, bool)
	// Add stores the value only if the key is absent. Returns false when an
	// entry already existed.
	Add(key ScoreKey, value float64) bool
}
