package hybrid

import "github.com/katalvlaran/factree/core"

// FactorGraph is a factor graph over hybrid factors.
type FactorGraph = core.FactorGraph[Factor]

// NewFactorGraph builds a graph holding the given factors.
func NewFactorGraph(factors ...Factor) *FactorGraph {
	return core.NewFactorGraph(factors...)
}

// GraphError sums the factor errors over the live factors of g at v, -ln of
// the unnormalized joint density.
func GraphError(g *FactorGraph, v Values) (float64, error) {
	if g == nil {
		return 0, core.ErrNilGraph
	}
	total := 0.0
	for _, f := range g.Factors() {
		e, err := f.Error(v)
		if err != nil {
			return 0, err
		}
		total += e
	}

	return total, nil
}
