package domain

import (
	"fmt"
	"strings"
)

const (
	// ScoreHeader precedes the rows of a recursive calculation report
	ScoreHeader = "Fraction of score | Absolute score | Amount | Activity"

	// RootFraction replaces the fraction column of the root row
	RootFraction = "0001"

	// DefaultIndent is the indentation unit repeated once per depth level
	DefaultIndent = "  "
)

// FormatQuantityLine renders a supply chain row: "<amount>: <label>"
func FormatQuantityLine(rec VisitRecord, indent string) string {
	return fmt.Sprintf("%s%.3g: %s",
		strings.Repeat(indent, rec.Depth),
		rec.Amount,
		rec.Activity.Label().Text,
	)
}

// FormatScoreLine renders a recursive calculation row:
// "<fraction> | <absolute> | <amount> | <label>". Labels longer than
// labelWidth runes are cut; labelWidth <= 0 disables truncation.
func FormatScoreLine(rec VisitRecord, indent string, labelWidth int) string {
	var score Attribution
	if rec.Score != nil {
		score = *rec.Score
	}

	fraction := RootFraction
	if !score.Root {
		fraction = fmt.Sprintf("%04.3g", score.Fraction)
	}

	return fmt.Sprintf("%s%s | %5.4g | %5.4g | %s",
		strings.Repeat(indent, rec.Depth),
		fraction,
		score.Absolute,
		rec.Amount,
		rec.Activity.Label().Truncate(labelWidth),
	)
}
