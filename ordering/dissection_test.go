package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// pathIndex builds a path 0 — 1 — ... — (n-1).
func pathIndex(t *testing.T, n int) *core.VariableIndex {
	t.Helper()
	var factors []*stubFactor
	for i := 0; i+1 < n; i++ {
		factors = append(factors, sf(core.Key(i), core.Key(i+1)))
	}

	return buildIndex(t, factors...)
}

func TestNestedDissectionCoversAllKeysOnce(t *testing.T) {
	vi := pathIndex(t, 20)

	ord, err := ordering.NestedDissection(vi)
	require.NoError(t, err)
	require.Len(t, ord, 20)
	assert.Len(t, ord.Positions(), 20)
}

func TestNestedDissectionPathSeparatorLast(t *testing.T) {
	vi := pathIndex(t, 20)

	ord, err := ordering.NestedDissection(vi)
	require.NoError(t, err)

	// The top-level separator of a 20-path is its median vertex, and
	// interiors-before-separators puts it at the very end.
	require.Len(t, ord, 20)
	assert.Equal(t, core.Key(10), ord[len(ord)-1])
}

func TestNestedDissectionSplitsComponents(t *testing.T) {
	// Two disjoint 6-paths; together they exceed the leaf size, so the
	// component split kicks in and orders each path on its own.
	var factors []*stubFactor
	for i := 0; i < 5; i++ {
		factors = append(factors, sf(core.Key(i), core.Key(i+1)))
		factors = append(factors, sf(core.Key(10+i), core.Key(10+i+1)))
	}
	vi := buildIndex(t, factors...)

	ord, err := ordering.NestedDissection(vi)
	require.NoError(t, err)
	assert.Equal(t, ordering.Ordering{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 15}, ord)
}

func TestNestedDissectionCompleteGraphFallsBack(t *testing.T) {
	// A single factor over ten variables leaves no level structure to
	// split, so the local fill-in sweep orders by key.
	keys := make([]core.Key, 10)
	for i := range keys {
		keys[i] = core.Key(i)
	}
	vi := buildIndex(t, sf(keys...))

	ord, err := ordering.NestedDissection(vi)
	require.NoError(t, err)
	assert.Equal(t, ordering.Ordering{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ord)
}

func TestNestedDissectionGridDeterministic(t *testing.T) {
	vi := gridIndex(t, 4, 5)

	first, err := ordering.NestedDissection(vi)
	require.NoError(t, err)
	require.Len(t, first, 20)
	for i := 0; i < 10; i++ {
		again, err := ordering.NestedDissection(vi)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNestedDissectionNilIndex(t *testing.T) {
	_, err := ordering.NestedDissection(nil)
	assert.ErrorIs(t, err, core.ErrNilIndex)
}
