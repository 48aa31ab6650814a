package commands

import (
	"context"
	"errors"
	"testing"

	"lcatrace/internal/adapters/memory"
	"lcatrace/internal/domain"
)

func key(db, code string) domain.Key {
	return domain.Key{Database: db, Code: code}
}

func tech(from, to domain.Key, amount float64) domain.Exchange {
	return domain.Exchange{Input: from, Output: to, Amount: amount, Role: domain.RoleTechnosphere}
}

func recursiveDataset() *domain.Dataset {
	a := func(code, name, loc string, exchanges ...domain.Exchange) domain.ActivityData {
		return domain.ActivityData{
			Activity:  domain.Activity{Key: key("a", code), Name: name, Unit: "b", Location: loc},
			Exchanges: exchanges,
		}
	}
	return &domain.Dataset{
		Activities: []domain.ActivityData{
			a("1", "process 1", "RU",
				domain.Exchange{Input: key("a", "1"), Output: key("a", "1"), Amount: 1, Role: domain.RoleProduction},
				tech(key("a", "2"), key("a", "1"), 0.8)),
			a("2", "process 2", "UA", tech(key("a", "3"), key("a", "2"), 0.6)),
			a("3", "process 3", "BY", tech(key("a", "4"), key("a", "3"), 10), tech(key("a", "5"), key("a", "3"), 0.1)),
			a("4", "process 4", "MD"),
			a("5", "process 5", "RO", tech(key("a", "1"), key("a", "5"), 0.05)),
		},
	}
}

func recursiveInventory(t *testing.T) *memory.Inventory {
	t.Helper()
	inv := memory.NewInventory()
	if _, err := NewImportCommand(inv, recursiveDataset()).Execute(context.Background()); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	return inv
}

// mapScorer serves fixed unit scores
type mapScorer map[domain.Key]float64

func (s mapScorer) UnitScore(k domain.Key, m domain.Method) (float64, error) {
	v, ok := s[k]
	if !ok {
		return 0, errors.New("no score for " + k.String())
	}
	return v, nil
}

var recursiveScores = mapScorer{
	key("a", "1"): 4.836,
	key("a", "2"): 3.545,
	key("a", "3"): 5.075,
	key("a", "4"): 0.005,
	key("a", "5"): 50.25,
}
