// SPDX-License-Identifier: MIT

package gaussian

import "github.com/katalvlaran/factree/core"

// FactorGraph is a factor graph over Jacobian factors.
type FactorGraph = core.FactorGraph[*JacobianFactor]

// NewFactorGraph builds a graph from the given factors.
func NewFactorGraph(factors ...*JacobianFactor) *FactorGraph {
	return core.NewFactorGraph(factors...)
}

// GraphError sums ½‖Ax−b‖² over the live factors of g at v.
func GraphError(g *FactorGraph, v VectorValues) (float64, error) {
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
