// SPDX-License-Identifier: MIT

package gaussian_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/gaussian"
	"github.com/katalvlaran/factree/ordering"
)

func TestEliminateSequentialChainZeroPrior(t *testing.T) {
	g := chainGraph(t, 0)
	bn, remaining, err := gaussian.EliminateSequential(g)
	require.NoError(t, err)

	assert.Equal(t, 3, bn.Len())
	require.Len(t, remaining, 1)
	assert.Empty(t, remaining[0].Keys())
	assert.Equal(t, 0, remaining[0].Rows())

	sol, err := bn.Optimize()
	require.NoError(t, err)
	require.Len(t, sol.Keys(), 3)
	requireAllNear(t, sol, 0, 1e-9)
}

func TestEliminateSequentialChainSolvesPrior(t *testing.T) {
	g := chainGraph(t, 5)
	bn, _, err := gaussian.EliminateSequential(g)
	require.NoError(t, err)

	sol, err := bn.Optimize()
	require.NoError(t, err)
	requireAllNear(t, sol, 5, 1e-9)

	ge, err := gaussian.GraphError(g, sol)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ge, 1e-9)

	be, err := bn.Error(sol)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, be, 1e-9)

	// At the mean the log density is minus the summed normalization.
	lp, err := bn.LogProbability(sol)
	require.NoError(t, err)
	nlc := 0.0
	for i := 0; i < bn.Len(); i++ {
		nlc += bn.At(i).NegLogConstant()
	}
	assert.InDelta(t, -nlc, lp, 1e-9)
}

// TestBayesNetErrorMatchesGraph: elimination is norm-preserving, so the
// net and the graph agree at any point, not just the mean.
func TestBayesNetErrorMatchesGraph(t *testing.T) {
	g := chainGraph(t, 5)
	bn, _, err := gaussian.EliminateSequential(g)
	require.NoError(t, err)

	at := vv(t, 5, 5, 6)
	ge, err := gaussian.GraphError(g, at)
	require.NoError(t, err)
	be, err := bn.Error(at)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, ge, 1e-9)
	assert.InDelta(t, ge, be, 1e-9)
}

func TestEliminateSequentialExplicitOrdering(t *testing.T) {
	g := chainGraph(t, 5)
	bn, _, err := gaussian.EliminateSequential(g, gaussian.WithOrdering(ordering.Ordering{2, 1, 0}))
	require.NoError(t, err)

	assert.Equal(t, []core.Key{2}, bn.At(0).Frontals())
	assert.Equal(t, []core.Key{0}, bn.At(2).Frontals())

	sol, err := bn.Optimize()
	require.NoError(t, err)
	requireAllNear(t, sol, 5, 1e-9)
}

func TestEliminateSequentialRejectsBadOrdering(t *testing.T) {
	g := chainGraph(t, 0)

	_, _, err := gaussian.EliminateSequential(g, gaussian.WithOrdering(ordering.Ordering{0, 1}))
	assert.Error(t, err)
}

func TestOptimizeGiven(t *testing.T) {
	s2 := math.Sqrt2
	bn := gaussian.NewBayesNet(
		mkcond(t, []core.Key{0, 1}, []int{1, 1}, 1, 1, 3, s2, -1/s2, 0))

	given := gaussian.NewVectorValues()
	require.NoError(t, given.Insert(1, 2))

	sol, err := bn.OptimizeGiven(given)
	require.NoError(t, err)
	x0, ok := sol.At(0)
	require.True(t, ok)
	assert.InDelta(t, 1.0, x0.AtVec(0), 1e-12)

	// Optimize alone cannot supply the dangling parent.
	_, err = bn.Optimize()
	assert.ErrorIs(t, err, gaussian.ErrMissingValue)

	// Fixing a key the net itself solves is a conflict.
	both := gaussian.NewVectorValues()
	require.NoError(t, both.Insert(0, 9))
	require.NoError(t, both.Insert(1, 2))
	_, err = bn.OptimizeGiven(both)
	assert.ErrorIs(t, err, gaussian.ErrDuplicateKey)
}

func TestBayesNetSampleDeterministic(t *testing.T) {
	bn, _, err := gaussian.EliminateSequential(chainGraph(t, 5))
	require.NoError(t, err)

	a, err := bn.Sample(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	b, err := bn.Sample(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.True(t, a.Equal(b, 0))

	// The fixed fallback seed keeps nil-rng runs reproducible too.
	c, err := bn.Sample(nil)
	require.NoError(t, err)
	d, err := bn.Sample(nil)
	require.NoError(t, err)
	assert.True(t, c.Equal(d, 0))

	mean, err := bn.Optimize()
	require.NoError(t, err)
	assert.False(t, a.Equal(mean, 1e-12))
}
