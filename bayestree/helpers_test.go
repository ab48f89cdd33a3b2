package bayestree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// stubFactor is the minimal Factor used by the structural tests.
type stubFactor struct{ keys []core.Key }

func (f *stubFactor) Keys() []core.Key { return f.keys }

// sf builds a stub factor over the given keys.
func sf(keys ...core.Key) *stubFactor { return &stubFactor{keys: keys} }

// stubConditional is the minimal Conditional produced by symElim.
type stubConditional struct {
	keys []core.Key
	nf   int
}

func (c *stubConditional) Keys() []core.Key     { return c.keys }
func (c *stubConditional) NumFrontals() int     { return c.nf }
func (c *stubConditional) Frontals() []core.Key { return c.keys[:c.nf] }
func (c *stubConditional) Parents() []core.Key  { return c.keys[c.nf:] }

// symElim eliminates symbolically: scope bookkeeping only.
func symElim(factors []*stubFactor, frontals []core.Key) (*stubConditional, *stubFactor, error) {
	isFrontal := make(map[core.Key]struct{}, len(frontals))
	for _, k := range frontals {
		isFrontal[k] = struct{}{}
	}

	seen := make(map[core.Key]struct{})
	var sep []core.Key
	for _, f := range factors {
		for _, k := range f.Keys() {
			if _, fr := isFrontal[k]; fr {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			sep = append(sep, k)
		}
	}
	core.SortKeys(sep)

	condKeys := make([]core.Key, 0, len(frontals)+len(sep))
	condKeys = append(condKeys, frontals...)
	condKeys = append(condKeys, sep...)

	return &stubConditional{keys: condKeys, nf: len(frontals)}, sf(sep...), nil
}

// symFamily bundles the symbolic eliminator with scope-level ToFactor and
// OrphanStub callbacks.
func symFamily() core.Family[*stubFactor, *stubConditional] {
	return core.Family[*stubFactor, *stubConditional]{
		Eliminate:  symElim,
		ToFactor:   func(c *stubConditional) *stubFactor { return &stubFactor{keys: c.Keys()} },
		OrphanStub: func(c *stubConditional) *stubFactor { return sf(c.Parents()...) },
	}
}

// failAbove is symFamily with an eliminator that degenerates whenever a
// frontal reaches the limit key.
func failAbove(limit core.Key) core.Family[*stubFactor, *stubConditional] {
	fam := symFamily()
	fam.Eliminate = func(factors []*stubFactor, frontals []core.Key) (*stubConditional, *stubFactor, error) {
		for _, k := range frontals {
			if k >= limit {
				return nil, nil, core.NewIndeterminateError("stub failure", frontals...)
			}
		}

		return symElim(factors, frontals)
	}

	return fam
}

// buildTree runs the multifrontal pipeline over the factors and validates
// the result.
func buildTree(t *testing.T, fam core.Family[*stubFactor, *stubConditional], ord ordering.Ordering, factors ...*stubFactor) *bayestree.Tree[*stubFactor, *stubConditional] {
	t.Helper()
	g := core.NewFactorGraph(factors...)
	bt, _, err := bayestree.EliminateMultifrontal(g, ord, fam)
	require.NoError(t, err)
	require.NoError(t, bt.Validate())

	return bt
}

// chainTree is prior(0), between(0,1), between(1,2) under the natural
// order: two cliques, [0 | 1] hanging off the root [1 2].
func chainTree(t *testing.T) *bayestree.Tree[*stubFactor, *stubConditional] {
	t.Helper()

	return buildTree(t, symFamily(), ordering.Ordering{0, 1, 2}, sf(0), sf(0, 1), sf(1, 2))
}

// diamondTree is the five-variable loop x0=0, x1=1, l1=2, l2=3, x2=4 under
// its fill-in minimizing order: child [0 | 2 3] under root [1 2 3 4].
func diamondTree(t *testing.T) *bayestree.Tree[*stubFactor, *stubConditional] {
	t.Helper()

	return buildTree(t, symFamily(), ordering.Ordering{1, 0, 2, 3, 4},
		sf(0, 2), sf(0, 3), sf(2, 4), sf(3, 4), sf(1, 4))
}

// fiveChainTree is a four-clique chain: [0|1] <- [1|2] <- [2|3] <- [3 4].
func fiveChainTree(t *testing.T) *bayestree.Tree[*stubFactor, *stubConditional] {
	t.Helper()

	return buildTree(t, symFamily(), ordering.Ordering{0, 1, 2, 3, 4},
		sf(0), sf(0, 1), sf(1, 2), sf(2, 3), sf(3, 4))
}

// cliqueShape returns the frontal and parent keys of the clique owning k.
func cliqueShape(t *testing.T, bt *bayestree.Tree[*stubFactor, *stubConditional], k core.Key) ([]core.Key, []core.Key) {
	t.Helper()
	i, err := bt.CliqueOf(k)
	require.NoError(t, err)
	c := bt.Clique(i)

	return c.Conditional.Frontals(), c.Conditional.Parents()
}
