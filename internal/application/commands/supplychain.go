package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"lcatrace/internal/application"
	"lcatrace/internal/application/traversal"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// Result summarizes a printed traversal
type Result struct {
	Records  int
	Warnings []ports.Warning
}

// SupplyChainOptions tunes a quantity-only traversal
type SupplyChainOptions struct {
	Amount   float64
	MaxLevel int
	Cutoff   float64
	Indent   string
}

// DefaultSupplyChainOptions returns the defaults of the supply chain printer
func DefaultSupplyChainOptions() SupplyChainOptions {
	return SupplyChainOptions{
		Amount:   1,
		MaxLevel: 7,
		Cutoff:   0.005,
		Indent:   domain.DefaultIndent,
	}
}

// SupplyChainCommand prints the quantities required along the supply chain
// of an activity, one line per visited activity
type SupplyChainCommand struct {
	graph   ports.GraphAccessor
	logger  *slog.Logger
	Root    domain.Key
	Options SupplyChainOptions
}

// NewSupplyChainCommand creates a new SupplyChainCommand
func NewSupplyChainCommand(graph ports.GraphAccessor, root domain.Key, opts SupplyChainOptions) *SupplyChainCommand {
	return &SupplyChainCommand{
		graph:   graph,
		Root:    root,
		Options: opts,
	}
}

// WithLogger mirrors data-quality warnings to logger
func (c *SupplyChainCommand) WithLogger(logger *slog.Logger) *SupplyChainCommand {
	c.logger = logger
	return c
}

// Records returns the visit records without rendering them
func (c *SupplyChainCommand) Records(ctx context.Context) ([]domain.VisitRecord, *Result, error) {
	var records []domain.VisitRecord
	result, err := c.run(ctx, func(rec domain.VisitRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return records, result, nil
}

// Execute runs the traversal and writes the report to w
func (c *SupplyChainCommand) Execute(ctx context.Context, w io.Writer) (*Result, error) {
	return c.run(ctx, func(rec domain.VisitRecord) error {
		if _, err := fmt.Fprintln(w, domain.FormatQuantityLine(rec, c.Options.Indent)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	})
}

func (c *SupplyChainCommand) run(ctx context.Context, emit func(domain.VisitRecord) error) (*Result, error) {
	diag := application.NewDiagnostics(c.logger)
	engine := traversal.NewEngine(c.graph, nil, diag)

	seq, err := engine.Walk(c.Root, traversal.Options{
		Amount:   c.Options.Amount,
		MaxLevel: c.Options.MaxLevel,
		Cutoff:   c.Options.Cutoff,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := emit(rec); err != nil {
			return nil, err
		}
		result.Records++
	}

	result.Warnings = diag.Warnings()
	return result, nil
}
