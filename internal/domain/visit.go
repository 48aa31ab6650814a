package domain

// Method identifies an impact assessment method (impact category),
// e.g., "ipcc-2021/gwp100"
type Method string

// Attribution is the score share of one visited activity
type Attribution struct {
	Absolute float64
	Fraction float64
	Root     bool
}

// VisitRecord is one row of a traversal: the demand reaching an activity at
// a given depth. Score is nil for quantity-only traversals.
type VisitRecord struct {
	Depth    int
	Amount   float64
	Activity Activity
	Score    *Attribution
}
