// Package memory provides an in-process inventory store.
package memory

import (
	"slices"
	"strings"
	"sync"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// Inventory implements ports.InventoryStore in memory
type Inventory struct {
	mu         sync.RWMutex
	activities map[domain.Key]domain.Activity
	exchanges  map[domain.Key][]domain.Exchange
	methods    map[domain.Method]map[domain.Key]float64
}

// Ensure Inventory implements InventoryStore
var _ ports.InventoryStore = (*Inventory)(nil)

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{
		activities: make(map[domain.Key]domain.Activity),
		exchanges:  make(map[domain.Key][]domain.Exchange),
		methods:    make(map[domain.Method]map[domain.Key]float64),
	}
}

// Activity returns the activity for a key
func (inv *Inventory) Activity(key domain.Key) (*domain.Activity, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	a, ok := inv.activities[key]
	if !ok {
		return nil, &application.NotFoundError{Kind: "activity", ID: key.String()}
	}
	a.Categories = slices.Clone(a.Categories)
	return &a, nil
}

// Exchanges returns the exchanges of an activity in insertion order
func (inv *Inventory) Exchanges(key domain.Key) ([]domain.Exchange, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.exchanges[key]), nil
}

// Activities returns every activity ordered by key
func (inv *Inventory) Activities() ([]domain.Activity, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]domain.Activity, 0, len(inv.activities))
	for _, a := range inv.activities {
		out = append(out, a)
	}
	domain.SortActivities(out)
	return out, nil
}

// Search performs a case-insensitive substring match on name, location and key
func (inv *Inventory) Search(query string) ([]domain.Activity, error) {
	all, err := inv.Activities()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	var out []domain.Activity
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Name), query) ||
			strings.Contains(strings.ToLower(a.Location), query) ||
			strings.Contains(strings.ToLower(a.Key.String()), query) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Methods returns the registered methods, sorted
func (inv *Inventory) Methods() ([]domain.Method, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]domain.Method, 0, len(inv.methods))
	for m := range inv.methods {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}

// CharacterizationFactors returns a copy of a method's factors
func (inv *Inventory) CharacterizationFactors(method domain.Method) (map[domain.Key]float64, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	factors, ok := inv.methods[method]
	if !ok {
		return nil, &application.NotFoundError{Kind: "method", ID: string(method)}
	}
	out := make(map[domain.Key]float64, len(factors))
	for k, v := range factors {
		out[k] = v
	}
	return out, nil
}

// BeginTx starts a buffered write; nothing is visible until Commit
func (inv *Inventory) BeginTx() (ports.GraphWriter, error) {
	return &tx{inv: inv}, nil
}

type tx struct {
	inv        *Inventory
	activities []domain.Activity
	exchanges  map[domain.Key][]domain.Exchange
	methods    map[domain.Method]map[domain.Key]float64
	done       bool
}

func (t *tx) UpsertActivity(activity *domain.Activity) error {
	t.activities = append(t.activities, *activity)
	return nil
}

func (t *tx) ReplaceExchanges(output domain.Key, exchanges []domain.Exchange) error {
	if t.exchanges == nil {
		t.exchanges = make(map[domain.Key][]domain.Exchange)
	}
	t.exchanges[output] = slices.Clone(exchanges)
	return nil
}

func (t *tx) UpsertMethod(method domain.Method, factors map[domain.Key]float64) error {
	if t.methods == nil {
		t.methods = make(map[domain.Method]map[domain.Key]float64)
	}
	copied := make(map[domain.Key]float64, len(factors))
	for k, v := range factors {
		copied[k] = v
	}
	t.methods[method] = copied
	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true

	t.inv.mu.Lock()
	defer t.inv.mu.Unlock()
	for _, a := range t.activities {
		t.inv.activities[a.Key] = a
	}
	for k, excs := range t.exchanges {
		t.inv.exchanges[k] = excs
	}
	for m, f := range t.methods {
		t.inv.methods[m] = f
	}
	return nil
}

func (t *tx) Rollback() error {
	t.done = true
	return nil
}
