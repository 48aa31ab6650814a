package ports

import "lcatrace/internal/domain"

// WarningKind classifies a data-quality warning raised during a traversal
type WarningKind string

const (
	WarningMultipleProduction WarningKind = "multiple production exchanges"
	WarningConsumedProduction WarningKind = "production consumed by losses"
	WarningZeroProduction     WarningKind = "zero production amount"
	WarningDanglingExchange   WarningKind = "exchange input not found"
	WarningMissingFields      WarningKind = "activity with missing fields"
)

// Warning is a non-fatal diagnostic about the inventory data
type Warning struct {
	Kind     WarningKind
	Activity domain.Key
	Detail   string
}

// DiagnosticsSink receives warnings out of band
type DiagnosticsSink interface {
	Warn(w Warning)
}
