package junction_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
	"github.com/katalvlaran/factree/junction"
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

// buildJT assembles index, elimination tree and junction tree for the
// given factors and elimination order.
func buildJT(t *testing.T, ord ordering.Ordering, factors ...*stubFactor) *junction.Tree[*stubFactor] {
	t.Helper()
	g := core.NewFactorGraph(factors...)
	et, err := elimtree.Build(g, nil, ord)
	require.NoError(t, err)
	jt, err := junction.Build(et)
	require.NoError(t, err)
	require.NoError(t, jt.Validate())

	return jt
}

// chainJT is prior(0), between(0,1), between(1,2) under the natural order.
func chainJT(t *testing.T) *junction.Tree[*stubFactor] {
	t.Helper()

	return buildJT(t, ordering.Ordering{0, 1, 2}, sf(0), sf(0, 1), sf(1, 2))
}

// diamondJT is the five-variable loop x0=0, x1=1, l1=2, l2=3, x2=4 under
// its fill-in minimizing order.
func diamondJT(t *testing.T) *junction.Tree[*stubFactor] {
	t.Helper()

	return buildJT(t, ordering.Ordering{1, 0, 2, 3, 4},
		sf(0, 2), sf(0, 3), sf(2, 4), sf(3, 4), sf(1, 4))
}

// gridJT builds a rows×cols 4-connected grid under a fill-in minimizing
// order; large enough to give the worker pool real subtrees.
func gridJT(t *testing.T, rows, cols int) *junction.Tree[*stubFactor] {
	t.Helper()
	var factors []*stubFactor
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			k := core.Key(r*cols + c)
			if c+1 < cols {
				factors = append(factors, sf(k, k+1))
			}
			if r+1 < rows {
				factors = append(factors, sf(k, core.Key((r+1)*cols+c)))
			}
		}
	}
	g := core.NewFactorGraph(factors...)
	vi, err := core.NewVariableIndex(g)
	require.NoError(t, err)
	ord, err := ordering.MinFill(vi)
	require.NoError(t, err)

	return buildJT(t, ord, factors...)
}
