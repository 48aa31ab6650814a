package lci

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcatrace/internal/adapters/fixture"
	"lcatrace/internal/adapters/memory"
	"lcatrace/internal/application"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
)

func k(db, code string) domain.Key {
	return domain.Key{Database: db, Code: code}
}

func load(t *testing.T, dataset *domain.Dataset) *memory.Inventory {
	t.Helper()
	inv := memory.NewInventory()
	_, err := commands.NewImportCommand(inv, dataset).Execute(context.Background())
	require.NoError(t, err)
	return inv
}

// nonunitary builds f/1, which yields `head` production per run and
// requires 2 units of f/2, which emits 1 unit of f/b
func nonunitary(t *testing.T, head ...domain.Exchange) *memory.Inventory {
	root := k("f", "1")
	exchanges := append(head, domain.Exchange{Input: k("f", "2"), Output: root, Amount: 2, Role: domain.RoleTechnosphere})
	return load(t, &domain.Dataset{
		Activities: []domain.ActivityData{
			{Activity: domain.Activity{Key: k("f", "b"), Type: domain.ActivityTypeEmission}},
			{Activity: domain.Activity{Key: root}, Exchanges: exchanges},
			{
				Activity:  domain.Activity{Key: k("f", "2")},
				Exchanges: []domain.Exchange{{Input: k("f", "b"), Output: k("f", "2"), Amount: 1, Role: domain.RoleBiosphere}},
			},
		},
		Methods: map[domain.Method]map[domain.Key]float64{"m": {k("f", "b"): 1}},
	})
}

func TestSolver_Nonunitary(t *testing.T) {
	inv := nonunitary(t, domain.Exchange{Input: k("f", "1"), Output: k("f", "1"), Amount: 2, Role: domain.RoleProduction})
	s := NewSolver(inv)

	score, err := s.UnitScore(k("f", "1"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)

	score, err = s.UnitScore(k("f", "2"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)
}

func TestSolver_LossesReduceProduction(t *testing.T) {
	root := k("f", "1")
	inv := nonunitary(t,
		domain.Exchange{Input: root, Output: root, Amount: 4, Role: domain.RoleProduction},
		domain.Exchange{Input: root, Output: root, Amount: 2, Role: domain.RoleTechnosphere},
	)

	score, err := NewSolver(inv).UnitScore(root, "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)
}

func TestSolver_ZeroProductionActsAsUnit(t *testing.T) {
	root := k("f", "1")
	zero := nonunitary(t, domain.Exchange{Input: root, Output: root, Amount: 0, Role: domain.RoleProduction})
	unit := nonunitary(t, domain.Exchange{Input: root, Output: root, Amount: 1, Role: domain.RoleProduction})

	got, err := NewSolver(zero).UnitScore(root, "m")
	require.NoError(t, err)
	want, err := NewSolver(unit).UnitScore(root, "m")
	require.NoError(t, err)

	assert.InDelta(t, 2, want, 1e-12)
	assert.InDelta(t, want, got, 1e-12)
}

func TestSolver_CyclicInventory(t *testing.T) {
	dataset, err := fixture.LoadFile("../fixture/testdata/recursive.yaml")
	require.NoError(t, err)
	s := NewSolver(load(t, dataset))

	score := func(code string) float64 {
		t.Helper()
		v, err := s.UnitScore(k("a", code), "climate change")
		require.NoError(t, err)
		return v
	}

	// x1 = 0.8 (1.5 + 0.6 (10 x4 + 0.1 (2 + 0.05 x1))) with x4 = 0.005
	x1 := 1.32 / 0.9976
	assert.InDelta(t, x1, score("1"), 1e-9)
	assert.InDelta(t, 0.005, score("4"), 1e-12)
	assert.InDelta(t, 2+0.05*x1, score("5"), 1e-9)

	// Every activity balances its direct emissions and inputs
	x3 := 10*score("4") + 0.1*score("5")
	assert.InDelta(t, x3, score("3"), 1e-9)
	assert.InDelta(t, 1.5+0.6*x3, score("2"), 1e-9)
}

func TestSolver_Flows(t *testing.T) {
	inv := nonunitary(t)

	score, err := NewSolver(inv).UnitScore(k("f", "b"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)
}

func TestSolver_DanglingInput(t *testing.T) {
	inv := load(t, &domain.Dataset{
		Activities: []domain.ActivityData{
			{
				Activity: domain.Activity{Key: k("d", "1")},
				Exchanges: []domain.Exchange{
					{Input: k("d", "gone"), Output: k("d", "1"), Amount: 3, Role: domain.RoleTechnosphere},
					{Input: k("d", "co2"), Output: k("d", "1"), Amount: 0.5, Role: domain.RoleBiosphere},
				},
			},
		},
		Methods: map[domain.Method]map[domain.Key]float64{"m": {k("d", "co2"): 2}},
	})
	s := NewSolver(inv)

	score, err := s.UnitScore(k("d", "1"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)

	score, err = s.UnitScore(k("d", "gone"), "m")
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestSolver_Errors(t *testing.T) {
	inv := nonunitary(t)
	s := NewSolver(inv)

	_, err := s.UnitScore(k("f", "missing"), "m")
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = s.UnitScore(k("f", "1"), "unknown")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestSolver_Invalidate(t *testing.T) {
	inv := nonunitary(t)
	s := NewSolver(inv)

	score, err := s.UnitScore(k("f", "2"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 1, score, 1e-12)

	tx, err := inv.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.UpsertMethod("m", map[domain.Key]float64{k("f", "b"): 3}))
	require.NoError(t, tx.Commit())

	s.Invalidate()
	score, err = s.UnitScore(k("f", "2"), "m")
	require.NoError(t, err)
	assert.InDelta(t, 3, score, 1e-12)
}

func TestSolver_RecursiveCalculation(t *testing.T) {
	dataset, err := fixture.LoadFile("../fixture/testdata/recursive.yaml")
	require.NoError(t, err)
	inv := load(t, dataset)

	opts := commands.DefaultRecursiveOptions()
	opts.MaxLevel = 1
	records, _, err := commands.NewRecursiveCalculationCommand(inv, NewSolver(inv), k("a", "1"), "climate change", opts).
		Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// a/1 only reaches the biosphere through a/2
	assert.InDelta(t, 1, records[1].Score.Fraction, 1e-9)
	assert.InDelta(t, records[0].Score.Absolute, records[1].Score.Absolute, 1e-9)
}
