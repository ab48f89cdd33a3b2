package bayestree

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
)

// separatorMarginal returns factors whose product is the marginal density
// over clique i's separator, obtained by marginalizing the parent's joint
// down to the separator keys. Roots have an empty separator and no factors.
// Results are memoized per clique; RemoveTop and Reattach invalidate the
// memos of every clique whose ancestry changed.
func (t *Tree[F, C]) separatorMarginal(i int) ([]F, error) {
	c := &t.cliques[i]
	if c.hasSepMarginal {
		return c.sepMarginal, nil
	}
	var out []F
	if c.Parent != -1 {
		joint, err := t.cliqueJoint(c.Parent)
		if err != nil {
			return nil, err
		}
		out, err = elimtree.Marginalize(joint, c.Conditional.Parents(), t.family.Eliminate)
		if err != nil {
			return nil, err
		}
	}
	c.sepMarginal = out
	c.hasSepMarginal = true

	return out, nil
}

// cliqueJoint returns factors whose product is the joint density over
// clique i's full scope: P(frontals, separator) = P(frontals | separator)
// times the separator marginal.
func (t *Tree[F, C]) cliqueJoint(i int) ([]F, error) {
	sep, err := t.separatorMarginal(i)
	if err != nil {
		return nil, err
	}
	out := make([]F, 0, len(sep)+1)
	out = append(out, sep...)
	out = append(out, t.family.ToFactor(t.cliques[i].Conditional))

	return out, nil
}

// MarginalFactor returns the unary marginal on k as a single factor: the
// joint of k's clique is marginalized onto k and eliminated once more to
// fold any constants in.
func (t *Tree[F, C]) MarginalFactor(k core.Key) (F, error) {
	var zero F
	i, err := t.CliqueOf(k)
	if err != nil {
		return zero, err
	}
	joint, err := t.cliqueJoint(i)
	if err != nil {
		return zero, err
	}
	onKey, err := elimtree.Marginalize(joint, []core.Key{k}, t.family.Eliminate)
	if err != nil {
		return zero, err
	}
	cond, _, err := t.family.Eliminate(onKey, []core.Key{k})
	if err != nil {
		return zero, fmt.Errorf("bayestree: marginal of %s: %w", core.DefaultKeyFormatter(k), err)
	}

	return t.family.ToFactor(cond), nil
}

// JointFactorGraph returns a factor graph whose product is the joint
// marginal over two keys. Keys sharing a clique marginalize its joint
// directly. Otherwise the joint over both root paths is assembled from the
// lowest shared ancestor's joint and the conditionals below it, then
// marginalized onto the pair. Keys in different trees of the forest are
// independent, so their unary marginals compose the answer.
func (t *Tree[F, C]) JointFactorGraph(a, b core.Key) (*core.FactorGraph[F], error) {
	ia, err := t.CliqueOf(a)
	if err != nil {
		return nil, err
	}
	ib, err := t.CliqueOf(b)
	if err != nil {
		return nil, err
	}
	pair := []core.Key{a, b}

	if ia == ib {
		joint, err := t.cliqueJoint(ia)
		if err != nil {
			return nil, err
		}
		onPair, err := elimtree.Marginalize(joint, pair, t.family.Eliminate)
		if err != nil {
			return nil, err
		}

		return core.NewFactorGraph(onPair...), nil
	}

	// Root path of a, then walk up from b until the paths meet.
	depthOn := make(map[int]int)
	var pathA []int
	for c := ia; c != -1; c = t.cliques[c].Parent {
		depthOn[c] = len(pathA)
		pathA = append(pathA, c)
	}
	lca := -1
	var pathB []int
	for c := ib; c != -1; c = t.cliques[c].Parent {
		if _, ok := depthOn[c]; ok {
			lca = c
			break
		}
		pathB = append(pathB, c)
	}

	if lca == -1 {
		fa, err := t.MarginalFactor(a)
		if err != nil {
			return nil, err
		}
		fb, err := t.MarginalFactor(b)
		if err != nil {
			return nil, err
		}

		return core.NewFactorGraph(fa, fb), nil
	}

	// P(C_lca) times the conditionals strictly below the ancestor covers
	// both keys; everything else marginalizes out.
	factors, err := t.cliqueJoint(lca)
	if err != nil {
		return nil, err
	}
	for _, c := range pathA[:depthOn[lca]] {
		factors = append(factors, t.family.ToFactor(t.cliques[c].Conditional))
	}
	for _, c := range pathB {
		factors = append(factors, t.family.ToFactor(t.cliques[c].Conditional))
	}
	onPair, err := elimtree.Marginalize(factors, pair, t.family.Eliminate)
	if err != nil {
		return nil, err
	}

	return core.NewFactorGraph(onPair...), nil
}
