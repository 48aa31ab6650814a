package memory

import (
	"errors"
	"testing"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
)

func key(code string) domain.Key {
	return domain.Key{Database: "m", Code: code}
}

func TestInventory_WritesVisibleAfterCommit(t *testing.T) {
	inv := NewInventory()

	tx, err := inv.BeginTx()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.UpsertActivity(&domain.Activity{Key: key("1"), Name: "one"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := inv.Activity(key("1")); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound before commit, got %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := inv.Activity(key("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Name != "one" {
		t.Errorf("expected name %q, got %q", "one", a.Name)
	}
}

func TestInventory_Rollback(t *testing.T) {
	inv := NewInventory()

	tx, _ := inv.BeginTx()
	tx.UpsertActivity(&domain.Activity{Key: key("1")})
	tx.Rollback()
	tx.Commit()

	if activities, _ := inv.Activities(); len(activities) != 0 {
		t.Errorf("expected empty inventory, got %d activities", len(activities))
	}
}

func TestInventory_ExchangesAreCopies(t *testing.T) {
	inv := NewInventory()

	tx, _ := inv.BeginTx()
	tx.ReplaceExchanges(key("1"), []domain.Exchange{
		{Input: key("2"), Output: key("1"), Amount: 1, Role: domain.RoleTechnosphere},
		{Input: key("3"), Output: key("1"), Amount: 2, Role: domain.RoleTechnosphere},
	})
	tx.Commit()

	first, _ := inv.Exchanges(key("1"))
	first[0].Amount = 99

	second, _ := inv.Exchanges(key("1"))
	if second[0].Amount != 1 {
		t.Errorf("stored exchange was mutated: %v", second[0].Amount)
	}
	if second[1].Input != key("3") {
		t.Errorf("expected order to be preserved, got %v", second)
	}
}

func TestInventory_Search(t *testing.T) {
	inv := NewInventory()

	tx, _ := inv.BeginTx()
	tx.UpsertActivity(&domain.Activity{Key: key("b"), Name: "Steel production", Location: "RER"})
	tx.UpsertActivity(&domain.Activity{Key: key("a"), Name: "electricity", Location: "CH"})
	tx.Commit()

	tests := []struct {
		query string
		want  int
	}{
		{"steel", 1},
		{"ch", 1},
		{"m/", 2},
		{"", 2},
		{"copper", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := inv.Search(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) = %d results, expected %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestInventory_Methods(t *testing.T) {
	inv := NewInventory()

	tx, _ := inv.BeginTx()
	tx.UpsertMethod("b", map[domain.Key]float64{key("co2"): 1})
	tx.UpsertMethod("a", nil)
	tx.Commit()

	methods, _ := inv.Methods()
	if len(methods) != 2 || methods[0] != "a" || methods[1] != "b" {
		t.Errorf("Methods() = %v, expected [a b]", methods)
	}

	if _, err := inv.CharacterizationFactors("c"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
