package bayestree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/junction"
	"github.com/katalvlaran/factree/ordering"
)

func TestEliminateMultifrontalChain(t *testing.T) {
	g := core.NewFactorGraph(sf(0), sf(0, 1), sf(1, 2))
	bt, remaining, err := bayestree.EliminateMultifrontal(g, ordering.Ordering{0, 1, 2}, symFamily())
	require.NoError(t, err)
	require.NoError(t, bt.Validate())

	assert.Equal(t, 2, bt.NumCliques())
	assert.Equal(t, []int{1}, bt.Roots())

	child := bt.Clique(0)
	assert.Equal(t, []core.Key{0}, child.Conditional.Frontals())
	assert.Equal(t, []core.Key{1}, child.Conditional.Parents())
	assert.Equal(t, 1, child.Parent)
	assert.Equal(t, []core.Key{1}, child.CachedFactor().Keys())

	root := bt.Clique(1)
	assert.Equal(t, []core.Key{1, 2}, root.Conditional.Frontals())
	assert.Empty(t, root.Conditional.Parents())
	assert.Equal(t, -1, root.Parent)
	assert.Equal(t, []int{0}, root.Children)
	assert.Empty(t, root.CachedFactor().Keys())

	// The root separator factor is the only leftover, an empty scope.
	require.Len(t, remaining, 1)
	assert.Empty(t, remaining[0].Keys())
}

func TestEliminateMultifrontalDiamond(t *testing.T) {
	bt := diamondTree(t)

	assert.Equal(t, 2, bt.NumCliques())

	frontals, parents := cliqueShape(t, bt, 0)
	assert.Equal(t, []core.Key{0}, frontals)
	assert.Equal(t, []core.Key{2, 3}, parents)

	frontals, parents = cliqueShape(t, bt, 1)
	assert.Equal(t, []core.Key{1, 2, 3, 4}, frontals)
	assert.Empty(t, parents)

	// Every root frontal resolves to the same clique.
	rootIdx, err := bt.CliqueOf(1)
	require.NoError(t, err)
	for _, k := range []core.Key{2, 3, 4} {
		i, err := bt.CliqueOf(k)
		require.NoError(t, err)
		assert.Equal(t, rootIdx, i)
	}
	assert.Equal(t, []core.Key{0, 1, 2, 3, 4}, bt.Keys())
}

func TestEliminateMultifrontalNilGraph(t *testing.T) {
	_, _, err := bayestree.EliminateMultifrontal(nil, ordering.Ordering{}, symFamily())
	assert.ErrorIs(t, err, core.ErrNilGraph)
}

func TestEliminateMultifrontalIncompleteFamily(t *testing.T) {
	fam := symFamily()
	fam.OrphanStub = nil
	g := core.NewFactorGraph(sf(0))
	_, _, err := bayestree.EliminateMultifrontal(g, ordering.Ordering{0}, fam)
	assert.ErrorIs(t, err, bayestree.ErrIncompleteFamily)
}

func TestNewEmptyResults(t *testing.T) {
	bt, err := bayestree.New(symFamily(), nil)
	require.NoError(t, err)
	require.NoError(t, bt.Validate())

	assert.Zero(t, bt.NumCliques())
	assert.Empty(t, bt.Roots())
	assert.Empty(t, bt.Keys())
}

func TestNewRejectsBackwardParent(t *testing.T) {
	results := []junction.CliqueResult[*stubFactor, *stubConditional]{
		{Conditional: &stubConditional{keys: []core.Key{0}, nf: 1}, Parent: 0, Cached: sf()},
	}
	_, err := bayestree.New(symFamily(), results)
	assert.ErrorIs(t, err, bayestree.ErrMalformedCliques)
}

func TestNewRejectsDuplicateFrontal(t *testing.T) {
	results := []junction.CliqueResult[*stubFactor, *stubConditional]{
		{Conditional: &stubConditional{keys: []core.Key{0, 1}, nf: 1}, Parent: 1, Cached: sf(1)},
		{Conditional: &stubConditional{keys: []core.Key{0, 1}, nf: 2}, Parent: -1, Cached: sf()},
	}
	_, err := bayestree.New(symFamily(), results)
	assert.ErrorIs(t, err, bayestree.ErrMalformedCliques)
}

func TestCliqueOfUnknownKey(t *testing.T) {
	bt := chainTree(t)
	_, err := bt.CliqueOf(99)
	assert.ErrorIs(t, err, bayestree.ErrUnknownKey)
}

func TestCliquePanicsOnArenaMisuse(t *testing.T) {
	bt := chainTree(t)
	assert.Panics(t, func() { bt.Clique(5) })
	assert.Panics(t, func() { bt.Clique(-1) })

	bt.RemoveTop([]core.Key{2})
	assert.Panics(t, func() { bt.Clique(1) })
}

func TestValidateDetectsDetachedOrphan(t *testing.T) {
	bt := chainTree(t)
	_, orphans := bt.RemoveTop([]core.Key{2})
	require.Equal(t, []int{0}, orphans)

	err := bt.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detached")
}

func TestDOTChain(t *testing.T) {
	bt := chainTree(t)
	dot := bt.DOT(nil)

	assert.Contains(t, dot, "clique0[label=\"0 : 1\"];")
	assert.Contains(t, dot, "clique1[label=\"1 2\"];")
	assert.Contains(t, dot, "clique1->clique0")
}
