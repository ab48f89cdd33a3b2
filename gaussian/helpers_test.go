// SPDX-License-Identifier: MIT

package gaussian_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/gaussian"
)

// prior builds the unit-information factor ½‖x_k − b‖².
func prior(t *testing.T, k core.Key, b ...float64) *gaussian.JacobianFactor {
	t.Helper()
	d := len(b)
	a := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		a.Set(i, i, 1)
	}
	f, err := gaussian.NewJacobianFactor(b, gaussian.Term{Key: k, A: a})
	require.NoError(t, err)

	return f
}

// between builds the scalar odometry factor ½(x_to − x_from)².
func between(t *testing.T, from, to core.Key) *gaussian.JacobianFactor {
	t.Helper()
	f, err := gaussian.NewJacobianFactor([]float64{0},
		gaussian.Term{Key: from, A: mat.NewDense(1, 1, []float64{-1})},
		gaussian.Term{Key: to, A: mat.NewDense(1, 1, []float64{1})})
	require.NoError(t, err)

	return f
}

// chainGraph is the three-pose smoother: a prior anchoring x0 at b0 and
// two zero-displacement odometry links. Its exact solution is all poses
// at b0.
func chainGraph(t *testing.T, b0 float64) *gaussian.FactorGraph {
	t.Helper()

	return gaussian.NewFactorGraph(
		prior(t, 0, b0),
		between(t, 0, 1),
		between(t, 1, 2))
}

// diamondGraph is the five-variable loop anchored at x0: under the
// fill-minimizing order it multifrontalizes into exactly two cliques,
// [0 | 2 3] below the root [1 2 3 4].
func diamondGraph(t *testing.T) *gaussian.FactorGraph {
	t.Helper()

	return gaussian.NewFactorGraph(
		prior(t, 0, 0),
		between(t, 0, 2),
		between(t, 0, 3),
		between(t, 2, 4),
		between(t, 3, 4),
		between(t, 1, 4))
}

// vv builds an assignment of scalar values keyed 0..len(xs)-1.
func vv(t *testing.T, xs ...float64) gaussian.VectorValues {
	t.Helper()
	v := gaussian.NewVectorValues()
	for i, x := range xs {
		require.NoError(t, v.Insert(core.Key(i), x))
	}

	return v
}

// requireAllNear asserts that every key of v holds a scalar within tol of
// want.
func requireAllNear(t *testing.T, v gaussian.VectorValues, want, tol float64) {
	t.Helper()
	for _, k := range v.Keys() {
		x, ok := v.At(k)
		require.True(t, ok)
		require.Equal(t, 1, x.Len(), "key %s", core.DefaultKeyFormatter(k))
		require.InDelta(t, want, x.AtVec(0), tol, "key %s", core.DefaultKeyFormatter(k))
	}
}
