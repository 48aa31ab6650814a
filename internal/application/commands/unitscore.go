package commands

import (
	"context"
	"errors"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// UnitScoreCommand computes the score of one unit of an activity's product
type UnitScoreCommand struct {
	scorer   ports.UnitScoreProvider
	Activity domain.Key
	Method   domain.Method
}

// NewUnitScoreCommand creates a new UnitScoreCommand
func NewUnitScoreCommand(scorer ports.UnitScoreProvider, activity domain.Key, method domain.Method) *UnitScoreCommand {
	return &UnitScoreCommand{scorer: scorer, Activity: activity, Method: method}
}

// Execute runs the unit score command
func (c *UnitScoreCommand) Execute(ctx context.Context) (float64, error) {
	if err := application.ValidateRequired("method", string(c.Method)); err != nil {
		return 0, err
	}

	score, err := c.scorer.UnitScore(c.Activity, c.Method)
	if err != nil {
		var scoringErr *application.ScoringError
		if errors.As(err, &scoringErr) {
			return 0, err
		}
		return 0, &application.ScoringError{Activity: c.Activity, Method: c.Method, Err: err}
	}
	return score, nil
}
