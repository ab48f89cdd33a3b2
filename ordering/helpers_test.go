package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
)

// stubFactor is the minimal Factor used by the ordering tests.
type stubFactor struct{ keys []core.Key }

func (f *stubFactor) Keys() []core.Key { return f.keys }

// sf builds a stub factor over the given keys.
func sf(keys ...core.Key) *stubFactor { return &stubFactor{keys: keys} }

// buildIndex indexes the given factors, failing the test on error.
func buildIndex(t *testing.T, factors ...*stubFactor) *core.VariableIndex {
	t.Helper()
	g := core.NewFactorGraph(factors...)
	vi, err := core.NewVariableIndex(g)
	require.NoError(t, err)

	return vi
}

// chainIndex builds prior(0), between(0,1), between(1,2).
func chainIndex(t *testing.T) *core.VariableIndex {
	t.Helper()

	return buildIndex(t, sf(0), sf(0, 1), sf(1, 2))
}

// diamondIndex builds the five-variable loop with keys
// x0=0, x1=1, l1=2, l2=3, x2=4:
//
//	x0 — l1 — x2 — x1
//	 \       /
//	  l2 ———
func diamondIndex(t *testing.T) *core.VariableIndex {
	t.Helper()

	return buildIndex(t, sf(0, 2), sf(0, 3), sf(2, 4), sf(3, 4), sf(1, 4))
}

// gridIndex builds a rows×cols 4-connected grid with keys r*cols+c.
func gridIndex(t *testing.T, rows, cols int) *core.VariableIndex {
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

	return buildIndex(t, factors...)
}
