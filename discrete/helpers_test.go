package discrete_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
)

// tf builds a table and fails the test on constructor errors.
func tf(t *testing.T, scope []discrete.DiscreteKey, values []float64) *discrete.TableFactor {
	t.Helper()
	f, err := discrete.NewTableFactor(scope, values)
	require.NoError(t, err)

	return f
}

// binary is the two-state scope entry for key k.
func binary(k core.Key) discrete.DiscreteKey {
	return discrete.DiscreteKey{Key: k, Card: 2}
}

// priorA is P(a) = [0.6 0.4] over key 0.
func priorA(t *testing.T) *discrete.TableFactor {
	t.Helper()

	return tf(t, []discrete.DiscreteKey{binary(0)}, []float64{0.6, 0.4})
}

// cpdBgivenA is P(b|a) over keys (0, 1): rows a, columns b.
func cpdBgivenA(t *testing.T) *discrete.TableFactor {
	t.Helper()

	return tf(t, []discrete.DiscreteKey{binary(0), binary(1)},
		[]float64{0.7, 0.3, 0.2, 0.8})
}

// cpdCgivenB is P(c|b) over keys (1, 2): rows b, columns c.
func cpdCgivenB(t *testing.T) *discrete.TableFactor {
	t.Helper()

	return tf(t, []discrete.DiscreteKey{binary(1), binary(2)},
		[]float64{0.9, 0.1, 0.25, 0.75})
}

// jointAB is P(a, b) = P(a)·P(b|a), entered directly: [0.42 0.18 0.08 0.32].
func jointAB(t *testing.T) *discrete.TableFactor {
	t.Helper()

	return tf(t, []discrete.DiscreteKey{binary(0), binary(1)},
		[]float64{0.42, 0.18, 0.08, 0.32})
}

// chainGraph is the three-variable chain a → b → c with
// P(a) = [0.6 0.4], P(b|a) = [0.7 0.3; 0.2 0.8] and
// P(c|b) = [0.9 0.1; 0.25 0.75]. Its exact unary marginals are
// P(a) = [0.6 0.4], P(b) = [0.5 0.5] and P(c) = [0.575 0.425], and the
// most probable explanation is (0, 0, 0) with probability 0.378.
func chainGraph(t *testing.T) *discrete.FactorGraph {
	t.Helper()

	return discrete.NewFactorGraph(priorA(t), cpdBgivenA(t), cpdCgivenB(t))
}

// valueOf evaluates f at v and fails the test on lookup errors.
func valueOf(t *testing.T, f *discrete.TableFactor, v discrete.Values) float64 {
	t.Helper()
	p, err := f.Value(v)
	require.NoError(t, err)

	return p
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
