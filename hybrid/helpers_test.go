package hybrid_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
	"github.com/katalvlaran/factree/hybrid"
)

// Continuous keys 0..2, mode keys from 10 up.
const (
	keyX0 core.Key = iota
	keyX1
	keyX2

	keyM1 core.Key = 10
	keyM2 core.Key = 11
)

// scalarFactor builds the one-row factor ½(a·x_k − rhs)².
func scalarFactor(t *testing.T, k core.Key, a, rhs float64) *gaussian.JacobianFactor {
	t.Helper()
	f, err := gaussian.NewJacobianFactor([]float64{rhs},
		gaussian.Term{Key: k, A: mat.NewDense(1, 1, []float64{a})})
	require.NoError(t, err)

	return f
}

// odometry builds the scalar link ½a²(x_to − x_from)².
func odometry(t *testing.T, a float64, from, to core.Key) *gaussian.JacobianFactor {
	t.Helper()
	f, err := gaussian.NewJacobianFactor([]float64{0},
		gaussian.Term{Key: from, A: mat.NewDense(1, 1, []float64{-a})},
		gaussian.Term{Key: to, A: mat.NewDense(1, 1, []float64{a})})
	require.NoError(t, err)

	return f
}

// binary is the two-state scope entry for key k.
func binary(k core.Key) discrete.DiscreteKey {
	return discrete.DiscreteKey{Key: k, Card: 2}
}

// modalPrior wraps the table P(k) ∝ probs.
func modalPrior(t *testing.T, k core.Key, probs []float64) hybrid.Modal {
	t.Helper()
	tf, err := discrete.NewTableFactor(
		[]discrete.DiscreteKey{{Key: k, Card: len(probs)}}, probs)
	require.NoError(t, err)

	return hybrid.Modal{TableFactor: tf}
}

// measureMixture is the two-mode measurement of x0 switched by m1:
// ½(x0 − 1)² under mode 0 and ½(2·x0 − 4)² under mode 1. Against the unit
// prior ½x0² the mode posteriors are N(0.5, 1/2) and N(1.6, 1/5), and the
// evidence ratio P(m1=1)/P(m1=0) is exp(−1.35)·√(2/5).
func measureMixture(t *testing.T) *hybrid.Mixture {
	t.Helper()
	m, err := hybrid.NewMixture(
		[]discrete.DiscreteKey{binary(keyM1)},
		[]*gaussian.JacobianFactor{
			scalarFactor(t, keyX0, 1, 1),
			scalarFactor(t, keyX0, 2, 4),
		}, nil)
	require.NoError(t, err)

	return m
}

// mixedOdometry is a mode-switched link: unit precision under mode 0,
// fourfold precision under mode 1, both centered at zero displacement.
func mixedOdometry(t *testing.T, m core.Key, from, to core.Key) *hybrid.Mixture {
	t.Helper()
	f, err := hybrid.NewMixture(
		[]discrete.DiscreteKey{binary(m)},
		[]*gaussian.JacobianFactor{
			odometry(t, 1, from, to),
			odometry(t, 2, from, to),
		}, nil)
	require.NoError(t, err)

	return f
}

// switchingChain is the three-pose smoother with mode-switched links:
//
//	½x0² + mix(m1; x0→x1) + mix(m2; x1→x2) + P(m1) ∝ [0.3 0.7]
//
// Every branch is centered at zero, so the joint mode posterior follows the
// lost normalization constants alone: P(m1, m2) ∝ prior(m1)/(a1·a2) with
// a = 1 or 2, giving [0.3 0.15 0.35 0.175]/0.975, marginal
// P(m2) = [2/3 1/3], most probable modes (m1, m2) = (1, 0) and all poses
// at zero.
func switchingChain(t *testing.T) *hybrid.FactorGraph {
	t.Helper()

	return hybrid.NewFactorGraph(
		hybrid.Continuous{JacobianFactor: scalarFactor(t, keyX0, 1, 0)},
		mixedOdometry(t, keyM1, keyX0, keyX1),
		mixedOdometry(t, keyM2, keyX1, keyX2),
		modalPrior(t, keyM1, []float64{0.3, 0.7}),
	)
}

// hv builds a joint assignment from scalar xs keyed 0.. and mode states.
func hv(t *testing.T, xs []float64, modes discrete.Values) hybrid.Values {
	t.Helper()
	v := hybrid.NewValues()
	for i, x := range xs {
		require.NoError(t, v.Continuous.Insert(core.Key(i), x))
	}
	for k, s := range modes {
		v.Discrete[k] = s
	}

	return v
}

// requireTableNear asserts the canonical cells of f match want within tol.
func requireTableNear(t *testing.T, want []float64, f *discrete.TableFactor, tol float64) {
	t.Helper()
	got := f.Table()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "cell %d", i)
	}
}

// requireScalarAt asserts v holds a scalar within tol of want at k.
func requireScalarAt(t *testing.T, v gaussian.VectorValues, k core.Key, want, tol float64) {
	t.Helper()
	x, ok := v.At(k)
	require.True(t, ok, "key %s", core.DefaultKeyFormatter(k))
	require.Equal(t, 1, x.Len())
	require.InDelta(t, want, x.AtVec(0), tol)
}
