package commands

import (
	"context"
	"testing"

	"lcatrace/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Electricity",
			query:     "Electricity",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "electricity production, hard coal",
			query:     "electricity",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "market for electricity",
			query:     "electricity",
			wantScore: 100,
		},
		{
			name:    "fuzzy match across separators",
			target:  "steel, low-alloyed",
			query:   "sla",
			wantMin: 1,
		},
		{
			name:      "no match",
			target:    "Electricity",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Electricity",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "CEMENT",
			query:   "cement",
			wantMin: 100,
		},
		{
			name:    "key match",
			target:  "ecoinvent/a1b2",
			query:   "a1b2",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "cement"

	exactScore := FuzzyScore("cement", query)
	prefixScore := FuzzyScore("cement production", query)
	containsScore := FuzzyScore("market for cement", query)
	fuzzyScore := FuzzyScore("c.e.m.e.n.t", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	activities := []domain.Activity{
		{Key: domain.Key{Database: "db", Code: "1"}, Name: "transport, lorry", Location: "RER"},
		{Key: domain.Key{Database: "db", Code: "2"}, Name: "market for cement", Location: "CH"},
		{Key: domain.Key{Database: "db", Code: "3"}, Name: "cement production", Location: "CH"},
		{Key: domain.Key{Database: "db", Code: "4"}, Name: "wood chips", Location: "GLO"},
	}

	sorted := FuzzySort(activities, "cement")

	if len(sorted) != 2 {
		t.Fatalf("expected 2 results, got %d", len(sorted))
	}
	if sorted[0].Name != "cement production" {
		t.Errorf("expected prefix match first, got %q", sorted[0].Name)
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	inv := recursiveInventory(t)

	results, err := NewSearchCommand(inv, "p").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for one-character query, got %d", len(results))
	}
}

func TestSearchCommand_Execute(t *testing.T) {
	inv := recursiveInventory(t)

	results, err := NewSearchCommand(inv, "process 3").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Key.Code != "3" {
		t.Errorf("expected a/3 first, got %s", results[0].Key)
	}
}
