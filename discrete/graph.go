package discrete

import "github.com/katalvlaran/factree/core"

// FactorGraph is a factor graph over table factors.
type FactorGraph = core.FactorGraph[*TableFactor]

// NewFactorGraph builds a graph from the given factors.
func NewFactorGraph(factors ...*TableFactor) *FactorGraph {
	return core.NewFactorGraph(factors...)
}

// GraphValue multiplies the live factors of g at v. The product is
// unnormalized unless the graph already is.
func GraphValue(g *FactorGraph, v Values) (float64, error) {
	if g == nil {
		return 0, core.ErrNilGraph
	}
	total := 1.0
	for _, f := range g.Factors() {
		p, err := f.Value(v)
		if err != nil {
			return 0, err
		}
		total *= p
	}

	return total, nil
}
