package domain

// Production describes how much reference product one run of an activity
// yields
type Production struct {
	// Factor divides a demand (product units) into process runs
	Factor float64
	// Gross is the amount of the selected production exchange (1 if none)
	Gross float64
	// Losses is the summed amount of technosphere inputs of the activity's
	// own product
	Losses float64
	// Edges counts the production exchanges found
	Edges int
	// Ambiguous is set when more than one production exchange exists; the
	// first one in exchange order was used
	Ambiguous bool
	// Consumed is set when losses cancel gross production entirely; Factor
	// falls back to Gross
	Consumed bool
	// Zero is set when production is zero even after the fallback; Factor
	// is then 1 so zero and unit production unroll the same way
	Zero bool
}

// ResolveProduction computes the production factor from an activity's
// exchanges. Exchange order decides which production exchange wins when
// several exist.
func ResolveProduction(exchanges []Exchange) Production {
	p := Production{Gross: 1}

	for _, exc := range exchanges {
		switch {
		case exc.Role == RoleProduction:
			if p.Edges == 0 {
				p.Gross = exc.Amount
			}
			p.Edges++
		case exc.IsLoss():
			p.Losses += exc.Amount
		}
	}
	p.Ambiguous = p.Edges > 1

	p.Factor = p.Gross - p.Losses
	if p.Factor == 0 {
		p.Factor = p.Gross
		p.Consumed = p.Losses != 0
	}
	if p.Factor == 0 {
		p.Factor = 1
		p.Zero = true
	}
	return p
}
