package hybrid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
	"github.com/katalvlaran/factree/hybrid"
)

// scalarConditional builds x_k ~ N(mean, 1/r²) as the conditional [r | r·mean].
func scalarConditional(t *testing.T, k core.Key, r, mean float64) *gaussian.Conditional {
	t.Helper()
	c, err := gaussian.NewConditional([]core.Key{k}, []int{1}, 1,
		mat.NewDense(1, 2, []float64{r, r * mean}))
	require.NoError(t, err)

	return c
}

// modeConditional builds P(k) from an explicit table.
func modeConditional(t *testing.T, k core.Key, probs []float64) *discrete.Conditional {
	t.Helper()
	tf, err := discrete.NewTableFactor(
		[]discrete.DiscreteKey{{Key: k, Card: len(probs)}}, probs)
	require.NoError(t, err)
	c, err := discrete.NewConditional([]core.Key{k}, tf)
	require.NoError(t, err)

	return c
}

// switchedConditional builds P(x0 | m1) with branches N(0.5, 1) and
// N(1.6, 1/4).
func switchedConditional(t *testing.T) *hybrid.MixtureConditional {
	t.Helper()
	mc, err := hybrid.NewMixtureConditional(
		[]discrete.DiscreteKey{binary(keyM1)},
		[]*gaussian.Conditional{
			scalarConditional(t, keyX0, 1, 0.5),
			scalarConditional(t, keyX0, 2, 1.6),
		})
	require.NoError(t, err)

	return mc
}

func TestNewMixtureConditionalValidation(t *testing.T) {
	gc0 := scalarConditional(t, keyX0, 1, 0.5)

	_, err := hybrid.NewMixtureConditional(nil, nil)
	assert.ErrorIs(t, err, hybrid.ErrNoModes)

	_, err = hybrid.NewMixtureConditional(
		[]discrete.DiscreteKey{binary(keyM1)},
		[]*gaussian.Conditional{gc0})
	assert.ErrorIs(t, err, hybrid.ErrBranchCount)

	_, err = hybrid.NewMixtureConditional(
		[]discrete.DiscreteKey{binary(keyM1)},
		[]*gaussian.Conditional{gc0, nil})
	assert.ErrorIs(t, err, hybrid.ErrNilBranch)

	_, err = hybrid.NewMixtureConditional(
		[]discrete.DiscreteKey{binary(keyM1)},
		[]*gaussian.Conditional{gc0, scalarConditional(t, keyX1, 1, 0)})
	assert.ErrorIs(t, err, hybrid.ErrBranchScope)

	_, err = hybrid.NewMixtureConditional(
		[]discrete.DiscreteKey{binary(keyX0)},
		[]*gaussian.Conditional{gc0, scalarConditional(t, keyX0, 2, 1.6)})
	assert.ErrorIs(t, err, hybrid.ErrDuplicateKey)
}

func TestMixtureConditionalAccessors(t *testing.T) {
	mc := switchedConditional(t)

	assert.Equal(t, []core.Key{keyX0, keyM1}, mc.Keys())
	assert.Equal(t, 1, mc.NumFrontals())
	assert.Equal(t, []core.Key{keyX0}, mc.Frontals())
	assert.Equal(t, []core.Key{keyM1}, mc.Parents())
	assert.Empty(t, mc.ContinuousParents())
	assert.Equal(t, []discrete.DiscreteKey{binary(keyM1)}, mc.DiscreteKeys())
	assert.Equal(t, 2, mc.NumBranches())

	b0, err := mc.Choose(discrete.Values{keyM1: 0})
	require.NoError(t, err)
	b1, err := mc.Choose(discrete.Values{keyM1: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Log(2*math.Pi), b0.NegLogConstant(), 1e-12)
	assert.InDelta(t, 0.5*math.Log(2*math.Pi)-math.Log(2), b1.NegLogConstant(), 1e-12)

	// The sharper branch normalizes better; the mixture adopts its constant.
	assert.InDelta(t, b1.NegLogConstant(), mc.NegLogConstant(), 1e-12)

	_, err = mc.Choose(discrete.Values{})
	assert.ErrorIs(t, err, hybrid.ErrMissingMode)
}

// -ln P(v) must equal Error(v) + NegLogConstant() for every mode, with the
// correction charging the less-normalized branch.
func TestMixtureConditionalErrorIdentity(t *testing.T) {
	mc := switchedConditional(t)

	for mode := 0; mode < 2; mode++ {
		v := hv(t, []float64{0.3}, discrete.Values{keyM1: mode})
		e, err := mc.Error(v)
		require.NoError(t, err)
		lp, err := mc.LogProbability(v)
		require.NoError(t, err)
		assert.InDelta(t, -lp, e+mc.NegLogConstant(), 1e-12, "mode %d", mode)
	}

	// Mode 0 has the wider branch: its correction is ln 2, on top of the
	// plain residual ½(0.3−0.5)².
	e, err := mc.Error(hv(t, []float64{0.3}, discrete.Values{keyM1: 0}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.04+math.Log(2), e, 1e-12)
}

func TestConditionalUnionGaussian(t *testing.T) {
	inner := scalarConditional(t, keyX0, 1, 0.5)
	c := hybrid.FromGaussian(inner)

	assert.True(t, c.IsContinuous())
	assert.False(t, c.IsDiscrete())
	assert.False(t, c.IsHybrid())
	assert.Same(t, inner, c.AsGaussian())
	assert.Nil(t, c.AsDiscrete())
	assert.Equal(t, []core.Key{keyX0}, c.Keys())
	assert.Equal(t, []core.Key{keyX0}, c.Frontals())
	assert.Empty(t, c.Parents())

	chosen, err := c.Choose(nil)
	require.NoError(t, err)
	assert.Same(t, inner, chosen)
}

func TestConditionalUnionDiscrete(t *testing.T) {
	c := hybrid.FromDiscrete(modeConditional(t, keyM1, []float64{0.3, 0.7}))

	assert.True(t, c.IsDiscrete())
	assert.False(t, c.IsContinuous())
	assert.Equal(t, []core.Key{keyM1}, c.Keys())
	assert.Zero(t, c.NegLogConstant())

	_, err := c.Choose(discrete.Values{keyM1: 0})
	assert.ErrorIs(t, err, hybrid.ErrNotContinuous)

	e, err := c.Error(hv(t, nil, discrete.Values{keyM1: 1}))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.7), e, 1e-12)
}

func TestConditionalUnionMixture(t *testing.T) {
	mc := switchedConditional(t)
	c := hybrid.FromMixture(mc)

	assert.True(t, c.IsHybrid())
	assert.Same(t, mc, c.AsMixture())
	assert.Equal(t, []core.Key{keyX0, keyM1}, c.Keys())
	assert.Equal(t, []core.Key{keyM1}, c.Parents())

	chosen, err := c.Choose(discrete.Values{keyM1: 1})
	require.NoError(t, err)
	sol, err := chosen.Solve(gaussian.NewVectorValues())
	require.NoError(t, err)
	requireScalarAt(t, sol, keyX0, 1.6, 1e-12)
}

// The identity -ln P = Error + NegLogConstant holds for all three forms.
func TestConditionalUnionErrorIdentity(t *testing.T) {
	conds := []*hybrid.Conditional{
		hybrid.FromGaussian(scalarConditional(t, keyX0, 1, 0.5)),
		hybrid.FromDiscrete(modeConditional(t, keyM1, []float64{0.3, 0.7})),
		hybrid.FromMixture(switchedConditional(t)),
	}
	v := hv(t, []float64{0.3}, discrete.Values{keyM1: 1})

	for i, c := range conds {
		e, err := c.Error(v)
		require.NoError(t, err)
		lp, err := c.LogProbability(v)
		require.NoError(t, err)
		assert.InDelta(t, -lp, e+c.NegLogConstant(), 1e-12, "conditional %d", i)
	}
}

func TestConditionalFromNilPanics(t *testing.T) {
	assert.Panics(t, func() { hybrid.FromGaussian(nil) })
	assert.Panics(t, func() { hybrid.FromDiscrete(nil) })
	assert.Panics(t, func() { hybrid.FromMixture(nil) })
}
