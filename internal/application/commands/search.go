package commands

import (
	"context"
	"sort"
	"strings"

	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// SearchResult wraps domain.Activity with a relevance score
type SearchResult struct {
	domain.Activity
	Score int
}

// SearchCommand searches the inventory with fuzzy matching
type SearchCommand struct {
	inventory ports.Inventory
	Query     string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(inventory ports.Inventory, query string) *SearchCommand {
	return &SearchCommand{
		inventory: inventory,
		Query:     query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	// Fuzzy matching needs every candidate, not only substring hits
	activities, err := c.inventory.Activities()
	if err != nil {
		return nil, err
	}

	return FuzzySort(activities, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == ',' || target[i-1] == '-' || target[i-1] == '/') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort ranks activities by relevance to the query, dropping
// non-matches. Ties keep inventory order.
func FuzzySort(activities []domain.Activity, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(activities))

	for _, a := range activities {
		best := max(
			FuzzyScore(a.Name, query),
			FuzzyScore(a.Key.String(), query),
			FuzzyScore(a.Location, query),
		)

		if best > 0 {
			scored = append(scored, SearchResult{
				Activity: a,
				Score:    best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
