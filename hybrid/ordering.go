package hybrid

import (
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// OrderingConstrainedLast computes an elimination ordering with the chosen
// heuristic and then moves every mode key behind every continuous key,
// preserving the heuristic's relative order within each kind. Eliminating
// along such an ordering keeps Eliminate inside the conditional
// linear-Gaussian family: continuous variables are integrated out while the
// modes still condition them, and the modes are summed out of pure tables
// at the end.
func OrderingConstrainedLast(g *FactorGraph, algo ordering.Algorithm) (ordering.Ordering, error) {
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		return nil, err
	}
	base, err := ordering.Compute(vi, algo)
	if err != nil {
		return nil, err
	}

	isMode := modeKeySet(g)
	out := make(ordering.Ordering, 0, len(base))
	for _, k := range base {
		if !isMode[k] {
			out = append(out, k)
		}
	}
	for _, k := range base {
		if isMode[k] {
			out = append(out, k)
		}
	}

	return out, nil
}

// MergeBarrier returns a junction.WithMergeBarrier predicate that keeps
// continuous and mode variables in separate cliques, so every clique's
// frontal set stays within one kind and Eliminate never sees mixed
// frontals.
func MergeBarrier(g *FactorGraph) func(child, parent core.Key) bool {
	isMode := modeKeySet(g)

	return func(child, parent core.Key) bool {
		return isMode[child] != isMode[parent]
	}
}

// modeKeySet collects the keys any live factor declares as discrete.
func modeKeySet(g *FactorGraph) map[core.Key]bool {
	isMode := make(map[core.Key]bool)
	for _, f := range g.Factors() {
		for _, dk := range f.DiscreteKeys() {
			isMode[dk.Key] = true
		}
	}

	return isMode
}
