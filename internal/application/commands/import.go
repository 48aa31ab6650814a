package commands

import (
	"context"
	"fmt"
	"time"

	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// ImportCommand writes a dataset into an inventory store in one transaction
type ImportCommand struct {
	store   ports.InventoryStore
	Dataset *domain.Dataset
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.InventoryStore, dataset *domain.Dataset) *ImportCommand {
	return &ImportCommand{store: store, Dataset: dataset}
}

// Execute runs the import. Nothing is written if any step fails.
func (c *ImportCommand) Execute(ctx context.Context) (*domain.ImportStats, error) {
	start := time.Now()
	stats := &domain.ImportStats{}

	tx, err := c.store.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin import: %w", err)
	}

	for _, data := range c.Dataset.Activities {
		if err := ctx.Err(); err != nil {
			tx.Rollback()
			return nil, err
		}
		activity := data.Activity
		if err := tx.UpsertActivity(&activity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to import activity %s: %w", activity.Key, err)
		}
		if err := tx.ReplaceExchanges(activity.Key, data.Exchanges); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to import exchanges of %s: %w", activity.Key, err)
		}
		stats.Activities++
		stats.Exchanges += len(data.Exchanges)
	}

	for method, factors := range c.Dataset.Methods {
		if err := tx.UpsertMethod(method, factors); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to import method %s: %w", method, err)
		}
		stats.Methods++
		stats.Factors += len(factors)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
