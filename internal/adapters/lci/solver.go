// Package lci computes unit impact scores with a matrix life cycle
// inventory solve.
//
// The technosphere matrix A holds each activity's production factor on the
// diagonal and its technosphere requirements as negative off-diagonal
// entries. For a method with characterization vector c and biosphere matrix
// B, the score of one unit of activity j is x_j where Aᵀx = Bᵀc, so a single
// factorisation and one solve per method serve every activity.
package lci

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// Solver implements ports.UnitScoreProvider over an inventory snapshot
type Solver struct {
	inventory ports.Inventory

	mu     sync.Mutex
	system *system
	scores map[domain.Method]*mat.VecDense
}

// Ensure Solver implements UnitScoreProvider
var _ ports.UnitScoreProvider = (*Solver)(nil)

// system is the factorised technosphere of one inventory snapshot
type system struct {
	index map[domain.Key]int
	flows map[domain.Key]bool
	// biosphere[j] lists the elementary flows emitted by one run of j
	biosphere [][]domain.Exchange
	lu        mat.LU
}

// NewSolver creates a solver. The matrix is built on first use.
func NewSolver(inventory ports.Inventory) *Solver {
	return &Solver{inventory: inventory, scores: make(map[domain.Method]*mat.VecDense)}
}

// Invalidate drops the factorisation so the next call rebuilds it from the
// inventory
func (s *Solver) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system = nil
	s.scores = make(map[domain.Method]*mat.VecDense)
}

// UnitScore returns the score of one unit of the activity's reference
// product. Elementary flows score their characterization factor.
func (s *Solver) UnitScore(key domain.Key, method domain.Method) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.system == nil {
		sys, err := build(s.inventory)
		if err != nil {
			return 0, err
		}
		s.system = sys
	}

	if s.system.flows[key] {
		factors, err := s.inventory.CharacterizationFactors(method)
		if err != nil {
			return 0, err
		}
		return factors[key], nil
	}

	j, ok := s.system.index[key]
	if !ok {
		return 0, &application.NotFoundError{Kind: "activity", ID: key.String()}
	}

	x, ok := s.scores[method]
	if !ok {
		var err error
		x, err = s.solve(method)
		if err != nil {
			return 0, err
		}
		s.scores[method] = x
	}
	return x.AtVec(j), nil
}

// solve computes the unit scores of every activity for a method
func (s *Solver) solve(method domain.Method) (*mat.VecDense, error) {
	factors, err := s.inventory.CharacterizationFactors(method)
	if err != nil {
		return nil, err
	}

	n := len(s.system.index)
	h := mat.NewVecDense(n, nil)
	for j, flows := range s.system.biosphere {
		var v float64
		for _, e := range flows {
			v += e.Amount * factors[e.Input]
		}
		h.SetVec(j, v)
	}

	x := mat.NewVecDense(n, nil)
	if err := s.system.lu.SolveVecTo(x, true, h); err != nil {
		return nil, fmt.Errorf("solving inventory for %s: %w", method, err)
	}
	return x, nil
}

// build assembles and factorises the technosphere matrix
func build(inventory ports.Inventory) (*system, error) {
	activities, err := inventory.Activities()
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	sys := &system{
		index: make(map[domain.Key]int),
		flows: make(map[domain.Key]bool),
	}
	var processes []domain.Key
	for _, a := range activities {
		if a.Type.IsFlow() {
			sys.flows[a.Key] = true
			continue
		}
		sys.index[a.Key] = len(processes)
		processes = append(processes, a.Key)
	}

	exchanges := make([][]domain.Exchange, len(processes))
	for j, key := range processes {
		exchanges[j], err = inventory.Exchanges(key)
		if err != nil {
			return nil, fmt.Errorf("loading exchanges of %s: %w", key, err)
		}
	}

	// Inputs without a stored activity become columns that produce one
	// unit and require nothing
	for _, excs := range exchanges {
		for _, e := range domain.Requirements(excs) {
			if _, ok := sys.index[e.Input]; !ok && !sys.flows[e.Input] {
				sys.index[e.Input] = len(processes)
				processes = append(processes, e.Input)
			}
		}
	}

	n := len(processes)
	if n == 0 {
		return nil, fmt.Errorf("inventory has no processes")
	}

	a := mat.NewDense(n, n, nil)
	sys.biosphere = make([][]domain.Exchange, n)
	for j := range n {
		if j >= len(exchanges) {
			a.Set(j, j, 1)
			continue
		}

		a.Set(j, j, domain.ResolveProduction(exchanges[j]).Factor)

		for _, e := range domain.Requirements(exchanges[j]) {
			if i, ok := sys.index[e.Input]; ok {
				a.Set(i, j, a.At(i, j)-e.Amount)
			}
		}
		for _, e := range exchanges[j] {
			if e.Role == domain.RoleBiosphere {
				sys.biosphere[j] = append(sys.biosphere[j], e)
			}
		}
	}

	sys.lu.Factorize(a)
	return sys, nil
}
