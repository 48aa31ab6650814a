package application

import (
	"errors"
	"math"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "method",
			value:     "ipcc/gwp100",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "method",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "activity",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateTraversal(t *testing.T) {
	tests := []struct {
		name      string
		params    TraversalParams
		wantErr   bool
		wantField string
	}{
		{
			name:   "defaults",
			params: TraversalParams{Amount: 1, MaxLevel: 3, Cutoff: 0.0025},
		},
		{
			name:   "zero cutoff and depth",
			params: TraversalParams{Amount: 1, MaxLevel: 0, Cutoff: 0},
		},
		{
			name:   "negative amount is a reduction",
			params: TraversalParams{Amount: -2, MaxLevel: 1},
		},
		{
			name:      "negative max level",
			params:    TraversalParams{Amount: 1, MaxLevel: -1},
			wantErr:   true,
			wantField: "max level",
		},
		{
			name:      "negative cutoff",
			params:    TraversalParams{Amount: 1, MaxLevel: 1, Cutoff: -0.1},
			wantErr:   true,
			wantField: "cutoff",
		},
		{
			name:      "cutoff of one",
			params:    TraversalParams{Amount: 1, MaxLevel: 1, Cutoff: 1},
			wantErr:   true,
			wantField: "cutoff",
		},
		{
			name:      "NaN cutoff",
			params:    TraversalParams{Amount: 1, MaxLevel: 1, Cutoff: math.NaN()},
			wantErr:   true,
			wantField: "cutoff",
		},
		{
			name:      "infinite amount",
			params:    TraversalParams{Amount: math.Inf(1), MaxLevel: 1},
			wantErr:   true,
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTraversal(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTraversal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, valErr.Field)
			}
		})
	}
}
