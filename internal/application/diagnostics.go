package application

import (
	"log/slog"
	"sync"

	"lcatrace/internal/ports"
)

// Diagnostics collects traversal warnings and optionally mirrors them to a
// structured logger
type Diagnostics struct {
	mu       sync.Mutex
	warnings []ports.Warning
	logger   *slog.Logger
}

// Ensure Diagnostics implements DiagnosticsSink
var _ ports.DiagnosticsSink = (*Diagnostics)(nil)

// NewDiagnostics creates a collector. logger may be nil.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Warn records a warning
func (d *Diagnostics) Warn(w ports.Warning) {
	d.mu.Lock()
	d.warnings = append(d.warnings, w)
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Warn(string(w.Kind),
			slog.String("activity", w.Activity.String()),
			slog.String("detail", w.Detail),
		)
	}
}

// Warnings returns a copy of the collected warnings in arrival order
func (d *Diagnostics) Warnings() []ports.Warning {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ports.Warning, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// Count returns how many warnings of the given kind were collected
func (d *Diagnostics) Count(kind ports.WarningKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, w := range d.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
