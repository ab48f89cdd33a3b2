package hybrid

import (
	"fmt"

	"github.com/katalvlaran/factree/bayestree"
)

// BayesTree is a hybrid Bayes tree. It adds joint decoding on top of the
// generic clique tree; queries and incremental updates are promoted from
// the embedded tree, though marginals and mixed-kind updates re-eliminate
// without the kind constraint and can fail with ErrMixedFrontals.
type BayesTree struct {
	*bayestree.Tree[Factor, *Conditional]
}

// Optimize decodes every clique conditional top-down. Constrained orderings
// put the discrete cliques at the roots, so each mixture below sees its
// modes decoded before its branch is selected and back-substituted.
func (bt *BayesTree) Optimize() (Values, error) {
	acc := NewValues()
	stack := append([]int(nil), bt.Roots()...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := bt.Clique(i)
		if err := solveInto(acc, c.Conditional); err != nil {
			return Values{}, fmt.Errorf("hybrid: optimize clique %d: %w", i, err)
		}
		stack = append(stack, c.Children...)
	}

	return acc, nil
}
