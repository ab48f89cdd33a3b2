// Package elimtree - sequential elimination over a built tree.
package elimtree

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// EliminateTree runs elim over every node of t in elimination order and
// collects the conditionals into a Bayes net.
//
// Per node the gathered factors are the node's own plus the separator
// factors passed up by its children; elim condenses them into a
// conditional on the node's variable and one separator factor. Roots send
// their separator factor to the remaining slice instead: with a complete
// ordering those are empty-scope constants, with a partial tree they form
// the marginal on the uneliminated variables. Stray factors pass through
// to remaining untouched.
//
// Eliminator failures abort and come back wrapped with the failing
// variable; errors.Is still reaches the cause (for numerical degeneracy,
// core.ErrIndeterminateSystem).
//
// Complexity: n eliminator calls plus O(total factors) bookkeeping.
func EliminateTree[F core.Factor, C core.Conditional](t *Tree[F], elim core.Eliminate[F, C]) (*core.BayesNet[C], []F, error) {
	if t == nil {
		return nil, nil, ErrNilTree
	}
	if elim == nil {
		return nil, nil, ErrNilEliminate
	}

	bn := core.NewBayesNet[C]()
	remaining := make([]F, 0, len(t.Stray)+len(t.Roots))
	remaining = append(remaining, t.Stray...)

	// Children always precede parents in the arena, so a forward sweep
	// visits the tree in postorder.
	pending := make([][]F, len(t.Nodes))
	for j := range t.Nodes {
		node := &t.Nodes[j]
		gathered := make([]F, 0, len(node.Factors)+len(pending[j]))
		gathered = append(gathered, node.Factors...)
		gathered = append(gathered, pending[j]...)
		pending[j] = nil

		cond, sep, err := elim(gathered, []core.Key{node.Key})
		if err != nil {
			return nil, nil, fmt.Errorf("elimtree: eliminate %s: %w", core.DefaultKeyFormatter(node.Key), err)
		}

		bn.Push(cond)
		if node.Parent >= 0 {
			pending[node.Parent] = append(pending[node.Parent], sep)
		} else {
			remaining = append(remaining, sep)
		}
	}

	return bn, remaining, nil
}

// EliminateSequential indexes g, builds the elimination tree for ord and
// eliminates it in one call. See Build and EliminateTree for the contracts
// and error surface.
func EliminateSequential[F core.Factor, C core.Conditional](g *core.FactorGraph[F], ord ordering.Ordering, elim core.Eliminate[F, C]) (*core.BayesNet[C], []F, error) {
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		return nil, nil, err
	}

	t, err := Build(g, vi, ord)
	if err != nil {
		return nil, nil, err
	}

	return EliminateTree(t, elim)
}

// Marginalize eliminates every variable of factors that is not listed in
// keep and returns the remaining factors: the (unnormalized) marginal on
// the kept variables, plus any factors that never touched an eliminated
// variable.
//
// The eliminated variables run in fill-in minimizing order; the resulting
// conditionals are discarded. Keys in keep that appear in no factor are
// ignored. With nothing to eliminate the input factors come back as a
// copy.
func Marginalize[F core.Factor, C core.Conditional](factors []F, keep []core.Key, elim core.Eliminate[F, C]) ([]F, error) {
	g := core.NewFactorGraph(factors...)
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		return nil, err
	}

	keepSet := make(map[core.Key]struct{}, len(keep))
	for _, k := range keep {
		keepSet[k] = struct{}{}
	}

	full, err := ordering.MinFill(vi)
	if err != nil {
		return nil, err
	}
	partial := make(ordering.Ordering, 0, len(full))
	for _, k := range full {
		if _, kept := keepSet[k]; !kept {
			partial = append(partial, k)
		}
	}

	if len(partial) == 0 {
		out := make([]F, len(factors))
		copy(out, factors)

		return out, nil
	}

	t, err := buildPartial(g, vi, partial)
	if err != nil {
		return nil, err
	}

	_, remaining, err := EliminateTree(t, elim)
	if err != nil {
		return nil, err
	}

	return remaining, nil
}
