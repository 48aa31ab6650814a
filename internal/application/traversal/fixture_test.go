package traversal

import (
	"errors"
	"testing"

	"lcatrace/internal/adapters/memory"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

func key(db, code string) domain.Key {
	return domain.Key{Database: db, Code: code}
}

func tech(from, to domain.Key, amount float64) domain.Exchange {
	return domain.Exchange{Input: from, Output: to, Amount: amount, Role: domain.RoleTechnosphere}
}

func prod(k domain.Key, amount float64) domain.Exchange {
	return domain.Exchange{Input: k, Output: k, Amount: amount, Role: domain.RoleProduction}
}

func bio(flow, to domain.Key, amount float64) domain.Exchange {
	return domain.Exchange{Input: flow, Output: to, Amount: amount, Role: domain.RoleBiosphere}
}

type activityDef struct {
	activity  domain.Activity
	exchanges []domain.Exchange
}

func newInventory(t *testing.T, defs ...activityDef) *memory.Inventory {
	t.Helper()
	inv := memory.NewInventory()
	tx, err := inv.BeginTx()
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	for _, d := range defs {
		if err := tx.UpsertActivity(&d.activity); err != nil {
			t.Fatalf("UpsertActivity() error = %v", err)
		}
		if err := tx.ReplaceExchanges(d.activity.Key, d.exchanges); err != nil {
			t.Fatalf("ReplaceExchanges() error = %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return inv
}

// recursiveInventory is a five process chain with a cycle back to the root:
// 1 -0.8-> 2 -0.6-> 3 -10-> 4, 3 -0.1-> 5 -0.05-> 1
func recursiveInventory(t *testing.T) *memory.Inventory {
	a := func(code, name, loc string) domain.Activity {
		return domain.Activity{Key: key("a", code), Name: name, Unit: "b", Location: loc}
	}
	return newInventory(t,
		activityDef{a("1", "process 1", "RU"), []domain.Exchange{prod(key("a", "1"), 1), tech(key("a", "2"), key("a", "1"), 0.8)}},
		activityDef{a("2", "process 2", "UA"), []domain.Exchange{tech(key("a", "3"), key("a", "2"), 0.6)}},
		activityDef{a("3", "process 3", "BY"), []domain.Exchange{tech(key("a", "4"), key("a", "3"), 10), tech(key("a", "5"), key("a", "3"), 0.1)}},
		activityDef{a("4", "process 4", "MD"), nil},
		activityDef{a("5", "process 5", "RO"), []domain.Exchange{tech(key("a", "1"), key("a", "5"), 0.05)}},
	)
}

// recursiveScores are unit scores consistent with the recursive inventory
var recursiveScores = map[domain.Key]float64{
	key("a", "1"): 4.836,
	key("a", "2"): 3.545,
	key("a", "3"): 5.075,
	key("a", "4"): 0.005,
	key("a", "5"): 50.25,
}

// nonunitaryInventory has a root producing `production` units per run with
// the given extra exchanges, requiring 2 units of f/2
func nonunitaryInventory(t *testing.T, head ...domain.Exchange) *memory.Inventory {
	root := key("f", "1")
	exchanges := append(head, tech(key("f", "2"), root, 2))
	return newInventory(t,
		activityDef{domain.Activity{Key: key("f", "b"), Location: "GLO", Type: domain.ActivityTypeEmission}, nil},
		activityDef{domain.Activity{Key: root, Location: "GLO"}, exchanges},
		activityDef{domain.Activity{Key: key("f", "2"), Location: "GLO"}, []domain.Exchange{bio(key("f", "b"), key("f", "2"), 1)}},
	)
}

// countingScorer serves unit scores from a map and counts calls per key
type countingScorer struct {
	scores map[domain.Key]float64
	fail   map[domain.Key]error
	calls  map[ports.ScoreKey]int
}

func newCountingScorer(scores map[domain.Key]float64) *countingScorer {
	return &countingScorer{scores: scores, calls: make(map[ports.ScoreKey]int)}
}

func (s *countingScorer) UnitScore(k domain.Key, m domain.Method) (float64, error) {
	s.calls[ports.ScoreKey{Activity: k, Method: m}]++
	if err, ok := s.fail[k]; ok {
		return 0, err
	}
	v, ok := s.scores[k]
	if !ok {
		return 0, errors.New("no score")
	}
	return v, nil
}

func (s *countingScorer) total() int {
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// countingGraph counts exchange lookups of a wrapped accessor
type countingGraph struct {
	ports.GraphAccessor
	exchangeCalls int
}

func (g *countingGraph) Exchanges(k domain.Key) ([]domain.Exchange, error) {
	g.exchangeCalls++
	return g.GraphAccessor.Exchanges(k)
}

func collect(t *testing.T, e *Engine, root domain.Key, opts Options) []domain.VisitRecord {
	t.Helper()
	seq, err := e.Walk(root, opts)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	var out []domain.VisitRecord
	for rec, err := range seq {
		if err != nil {
			t.Fatalf("traversal error = %v", err)
		}
		out = append(out, rec)
	}
	return out
}
