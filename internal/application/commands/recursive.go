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

// RecursiveOptions tunes a score attribution traversal
type RecursiveOptions struct {
	Amount     float64
	MaxLevel   int
	Cutoff     float64
	Indent     string
	LabelWidth int
	// Cache shares unit scores between calls; nil scopes them to one call
	Cache ports.ScoreCache
}

// DefaultRecursiveOptions returns the defaults of the recursive calculation
// printer
func DefaultRecursiveOptions() RecursiveOptions {
	return RecursiveOptions{
		Amount:     1,
		MaxLevel:   3,
		Cutoff:     0.0025,
		Indent:     domain.DefaultIndent,
		LabelWidth: 130,
	}
}

// RecursiveCalculationCommand prints how the impact score of an activity is
// distributed over its supply chain
type RecursiveCalculationCommand struct {
	graph   ports.GraphAccessor
	scorer  ports.UnitScoreProvider
	logger  *slog.Logger
	Root    domain.Key
	Method  domain.Method
	Options RecursiveOptions
}

// NewRecursiveCalculationCommand creates a new RecursiveCalculationCommand
func NewRecursiveCalculationCommand(
	graph ports.GraphAccessor,
	scorer ports.UnitScoreProvider,
	root domain.Key,
	method domain.Method,
	opts RecursiveOptions,
) *RecursiveCalculationCommand {
	return &RecursiveCalculationCommand{
		graph:   graph,
		scorer:  scorer,
		Root:    root,
		Method:  method,
		Options: opts,
	}
}

// WithLogger mirrors data-quality warnings to logger
func (c *RecursiveCalculationCommand) WithLogger(logger *slog.Logger) *RecursiveCalculationCommand {
	c.logger = logger
	return c
}

// Records returns the attributed visit records without rendering them
func (c *RecursiveCalculationCommand) Records(ctx context.Context) ([]domain.VisitRecord, *Result, error) {
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
func (c *RecursiveCalculationCommand) Execute(ctx context.Context, w io.Writer) (*Result, error) {
	headerWritten := false
	return c.run(ctx, func(rec domain.VisitRecord) error {
		if !headerWritten {
			if _, err := fmt.Fprintln(w, domain.ScoreHeader); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			headerWritten = true
		}
		line := domain.FormatScoreLine(rec, c.Options.Indent, c.Options.LabelWidth)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	})
}

func (c *RecursiveCalculationCommand) run(ctx context.Context, emit func(domain.VisitRecord) error) (*Result, error) {
	diag := application.NewDiagnostics(c.logger)
	engine := traversal.NewEngine(c.graph, c.scorer, diag)

	method := c.Method
	seq, err := engine.Walk(c.Root, traversal.Options{
		Amount:   c.Options.Amount,
		Method:   &method,
		MaxLevel: c.Options.MaxLevel,
		Cutoff:   c.Options.Cutoff,
		Cache:    c.Options.Cache,
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
