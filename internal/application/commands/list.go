package commands

import (
	"context"

	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// ListActivitiesCommand lists all activities of the inventory
type ListActivitiesCommand struct {
	inventory ports.Inventory
	// Processes drops elementary flows from the listing when set
	Processes bool
}

// NewListActivitiesCommand creates a new ListActivitiesCommand
func NewListActivitiesCommand(inventory ports.Inventory, processesOnly bool) *ListActivitiesCommand {
	return &ListActivitiesCommand{inventory: inventory, Processes: processesOnly}
}

// Execute runs the list activities command
func (c *ListActivitiesCommand) Execute(ctx context.Context) ([]domain.Activity, error) {
	activities, err := c.inventory.Activities()
	if err != nil {
		return nil, err
	}
	if !c.Processes {
		return activities, nil
	}

	out := activities[:0]
	for _, a := range activities {
		if !a.Type.IsFlow() {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListMethodsCommand lists the registered impact assessment methods
type ListMethodsCommand struct {
	inventory ports.Inventory
}

// NewListMethodsCommand creates a new ListMethodsCommand
func NewListMethodsCommand(inventory ports.Inventory) *ListMethodsCommand {
	return &ListMethodsCommand{inventory: inventory}
}

// Execute runs the list methods command
func (c *ListMethodsCommand) Execute(ctx context.Context) ([]domain.Method, error) {
	return c.inventory.Methods()
}
