// Package traversal unrolls the supply chain of an activity into a lazy
// sequence of visit records, optionally attributing impact scores.
package traversal

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// Options controls a single traversal
type Options struct {
	// Amount is the demand of the root activity's reference product
	Amount float64
	// Method enables score attribution; nil walks quantities only
	Method *domain.Method
	// MaxLevel is the deepest level emitted; the root is level 0
	MaxLevel int
	// Cutoff prunes the children of an activity whose fraction of the root
	// score is below it (score mode), or skips activities whose demand is
	// below it (quantity mode). Zero disables pruning.
	Cutoff float64
	// Cache memoizes unit scores. Nil uses a fresh cache for this call.
	Cache ports.ScoreCache
}

// Engine walks the technosphere graph depth-first
type Engine struct {
	graph  ports.GraphAccessor
	scorer ports.UnitScoreProvider
	diag   ports.DiagnosticsSink
}

// NewEngine creates an engine. scorer may be nil for quantity-only walks
// and diag may be nil to drop warnings.
func NewEngine(graph ports.GraphAccessor, scorer ports.UnitScoreProvider, diag ports.DiagnosticsSink) *Engine {
	return &Engine{graph: graph, scorer: scorer, diag: diag}
}

type frame struct {
	key    domain.Key
	amount float64
	depth  int
}

// Walk validates the options and returns the pre-order sequence of visit
// records rooted at root. The sequence is single-use; it does no work until
// iterated and stops as soon as the consumer does. A non-nil error yielded
// by the sequence is always its last element.
func (e *Engine) Walk(root domain.Key, opts Options) (iter.Seq2[domain.VisitRecord, error], error) {
	if err := application.ValidateTraversal(application.TraversalParams{
		Amount:   opts.Amount,
		MaxLevel: opts.MaxLevel,
		Cutoff:   opts.Cutoff,
	}); err != nil {
		return nil, err
	}
	if opts.Method != nil {
		if err := application.ValidateRequired("method", string(*opts.Method)); err != nil {
			return nil, err
		}
		if e.scorer == nil {
			return nil, &application.ValidationError{Field: "method", Message: "no unit score provider configured"}
		}
	}
	if _, err := e.graph.Activity(root); err != nil {
		return nil, fmt.Errorf("root activity %s: %w", root, err)
	}

	cache := opts.Cache
	if cache == nil {
		cache = NewMemoCache()
	}
	w := &walker{engine: e, opts: opts, cache: cache}
	return w.run(root), nil
}

type walker struct {
	engine    *Engine
	opts      Options
	cache     ports.ScoreCache
	rootScore float64
}

func (w *walker) run(root domain.Key) iter.Seq2[domain.VisitRecord, error] {
	return func(yield func(domain.VisitRecord, error) bool) {
		if w.belowAmountCutoff(w.opts.Amount) {
			return
		}
		stack := []frame{{key: root, amount: w.opts.Amount}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			rec, children, err := w.visit(f)
			if err != nil {
				yield(domain.VisitRecord{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}

			// Reverse push so children pop in stored exchange order
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// visit builds the record for one frame and the frames of its children
func (w *walker) visit(f frame) (domain.VisitRecord, []frame, error) {
	activity, err := w.activity(f.key)
	if err != nil {
		return domain.VisitRecord{}, nil, err
	}
	exchanges, err := w.engine.graph.Exchanges(f.key)
	if err != nil {
		return domain.VisitRecord{}, nil, fmt.Errorf("exchanges of %s: %w", f.key, err)
	}
	production := w.resolveProduction(f.key, exchanges)

	rec := domain.VisitRecord{Depth: f.depth, Amount: f.amount, Activity: *activity}
	expand := f.depth < w.opts.MaxLevel

	if w.opts.Method != nil {
		attribution, err := w.attribute(f)
		if err != nil {
			return domain.VisitRecord{}, nil, err
		}
		rec.Score = attribution
		if !attribution.Root && w.opts.Cutoff > 0 && math.Abs(attribution.Fraction) < w.opts.Cutoff {
			expand = false
		}
	}

	if !expand {
		return rec, nil, nil
	}

	runs := f.amount / production.Factor

	var children []frame
	for _, exc := range domain.Requirements(exchanges) {
		child := frame{key: exc.Input, amount: exc.Amount * runs, depth: f.depth + 1}
		if w.belowAmountCutoff(child.amount) {
			continue
		}
		children = append(children, child)
	}
	return rec, children, nil
}

func (w *walker) attribute(f frame) (*domain.Attribution, error) {
	unit, err := w.unitScore(f.key)
	if err != nil {
		return nil, err
	}

	absolute := unit * f.amount
	isRoot := f.depth == 0
	if isRoot {
		w.rootScore = absolute
	}

	fraction := 0.0
	if w.rootScore != 0 {
		fraction = absolute / w.rootScore
	}
	return &domain.Attribution{Absolute: absolute, Fraction: fraction, Root: isRoot}, nil
}

// unitScore consults the cache before asking the provider, so each
// (activity, method) pair is solved at most once per cache
func (w *walker) unitScore(key domain.Key) (float64, error) {
	method := *w.opts.Method
	sk := ports.ScoreKey{Activity: key, Method: method}
	if v, ok := w.cache.Get(sk); ok {
		return v, nil
	}

	v, err := w.engine.scorer.UnitScore(key, method)
	if err != nil {
		var scoringErr *application.ScoringError
		if errors.As(err, &scoringErr) {
			return 0, err
		}
		return 0, &application.ScoringError{Activity: key, Method: method, Err: err}
	}
	w.cache.Add(sk, v)
	return v, nil
}

// activity loads an activity; unknown exchange inputs degrade to a bare key
func (w *walker) activity(key domain.Key) (*domain.Activity, error) {
	activity, err := w.engine.graph.Activity(key)
	switch {
	case errors.Is(err, application.ErrNotFound):
		w.warn(ports.Warning{Kind: ports.WarningDanglingExchange, Activity: key, Detail: err.Error()})
		return &domain.Activity{Key: key}, nil
	case err != nil:
		return nil, fmt.Errorf("activity %s: %w", key, err)
	}

	if missing := activity.MissingFields(); len(missing) > 0 {
		w.warn(ports.Warning{
			Kind:     ports.WarningMissingFields,
			Activity: key,
			Detail:   "missing " + strings.Join(missing, ", "),
		})
	}
	return activity, nil
}

func (w *walker) resolveProduction(key domain.Key, exchanges []domain.Exchange) domain.Production {
	p := domain.ResolveProduction(exchanges)
	if p.Ambiguous {
		w.warn(ports.Warning{
			Kind:     ports.WarningMultipleProduction,
			Activity: key,
			Detail:   fmt.Sprintf("%d production exchanges, using the first (%g)", p.Edges, p.Gross),
		})
	}
	if p.Consumed {
		w.warn(ports.Warning{
			Kind:     ports.WarningConsumedProduction,
			Activity: key,
			Detail:   fmt.Sprintf("losses of %g cancel production of %g, using gross production", p.Losses, p.Gross),
		})
	}
	if p.Zero {
		w.warn(ports.Warning{
			Kind:     ports.WarningZeroProduction,
			Activity: key,
			Detail:   "treating production as one unit",
		})
	}
	return p
}

// belowAmountCutoff reports whether a quantity-mode demand is too small to
// print. Score mode prunes on fractions instead.
func (w *walker) belowAmountCutoff(amount float64) bool {
	return w.opts.Method == nil && w.opts.Cutoff > 0 && math.Abs(amount) < w.opts.Cutoff
}

func (w *walker) warn(warning ports.Warning) {
	if w.engine.diag != nil {
		w.engine.diag.Warn(warning)
	}
}
