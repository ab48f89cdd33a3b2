package discrete

import (
	"fmt"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
)

// BayesTree is a discrete Bayes tree. It adds decoding and normalized
// marginals on top of the generic clique tree; queries and incremental
// updates (MarginalFactor, JointFactorGraph, RemoveTop, Update) are
// promoted from the embedded tree.
type BayesTree struct {
	*bayestree.Tree[*TableFactor, *Conditional]
}

// Optimize decodes every clique conditional top-down, argmax given the
// separator decoded by the parent clique. Over a FamilyMax tree this is
// the most probable explanation.
func (bt *BayesTree) Optimize() (Values, error) {
	acc := make(Values)
	stack := append([]int(nil), bt.Roots()...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := bt.Clique(i)
		sol, err := c.Conditional.ArgMax(acc)
		if err != nil {
			return nil, fmt.Errorf("discrete: optimize clique %d: %w", i, err)
		}
		if err := mergeValues(acc, sol); err != nil {
			return nil, fmt.Errorf("discrete: optimize clique %d: %w", i, err)
		}
		stack = append(stack, c.Children...)
	}

	return acc, nil
}

// Marginal returns the single-variable marginal of k under the tree's
// eliminator, normalized to sum to one.
func (bt *BayesTree) Marginal(k core.Key) (*TableFactor, error) {
	f, err := bt.MarginalFactor(k)
	if err != nil {
		return nil, err
	}

	return f.Normalize()
}
