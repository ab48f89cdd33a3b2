// SPDX-License-Identifier: MIT

package gaussian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/gaussian"
)

func TestNewJacobianFactorLayout(t *testing.T) {
	f, err := gaussian.NewJacobianFactor([]float64{5, 6},
		gaussian.Term{Key: 3, A: mat.NewDense(2, 1, []float64{1, 2})},
		gaussian.Term{Key: 1, A: mat.NewDense(2, 2, []float64{0, 1, 1, 0})})
	require.NoError(t, err)

	assert.Equal(t, []core.Key{3, 1}, f.Keys())
	assert.Equal(t, []int{1, 2}, f.Dims())
	assert.Equal(t, 2, f.Rows())

	d, ok := f.Dim(1)
	require.True(t, ok)
	assert.Equal(t, 2, d)
	_, ok = f.Dim(7)
	assert.False(t, ok)

	a3 := f.A(3)
	require.NotNil(t, a3)
	assert.Equal(t, 2.0, a3.At(1, 0))
	a1 := f.A(1)
	require.NotNil(t, a1)
	assert.Equal(t, 1.0, a1.At(0, 1))
	assert.Nil(t, f.A(7))

	b := f.B()
	require.NotNil(t, b)
	assert.Equal(t, []float64{5, 6}, []float64{b.AtVec(0), b.AtVec(1)})

	aug := f.Augmented()
	require.NotNil(t, aug)
	r, c := aug.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
}

func TestNewJacobianFactorEmptyScopeConstant(t *testing.T) {
	f, err := gaussian.NewJacobianFactor([]float64{3})
	require.NoError(t, err)

	assert.Empty(t, f.Keys())
	assert.Equal(t, 1, f.Rows())

	e, err := f.Error(gaussian.NewVectorValues())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, e, 1e-12)
}

func TestNewJacobianFactorRejectsBadInput(t *testing.T) {
	_, err := gaussian.NewJacobianFactor(nil)
	assert.ErrorIs(t, err, gaussian.ErrShape)

	_, err = gaussian.NewJacobianFactor([]float64{1}, gaussian.Term{Key: 0})
	assert.ErrorIs(t, err, gaussian.ErrShape)

	_, err = gaussian.NewJacobianFactor([]float64{1},
		gaussian.Term{Key: 0, A: mat.NewDense(2, 1, nil)})
	assert.ErrorIs(t, err, gaussian.ErrShape)

	_, err = gaussian.NewJacobianFactor([]float64{1},
		gaussian.Term{Key: 0, A: mat.NewDense(1, 1, []float64{1})},
		gaussian.Term{Key: 0, A: mat.NewDense(1, 1, []float64{2})})
	assert.ErrorIs(t, err, gaussian.ErrDuplicateKey)
}

func TestJacobianFactorError(t *testing.T) {
	f := prior(t, 0, 5)
	e, err := f.Error(vv(t, 3))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, e, 1e-12)

	o := between(t, 0, 1)
	e, err = o.Error(vv(t, 1, 4))
	require.NoError(t, err)
	assert.InDelta(t, 4.5, e, 1e-12)
}

func TestJacobianFactorResidual(t *testing.T) {
	f := prior(t, 0, 5)
	r, err := f.Residual(vv(t, 3))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.InDelta(t, -2.0, r.AtVec(0), 1e-12)

	o := between(t, 0, 1)
	r, err = o.Residual(vv(t, 1, 4))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.InDelta(t, 3.0, r.AtVec(0), 1e-12)

	_, err = o.Residual(vv(t, 1))
	assert.ErrorIs(t, err, gaussian.ErrMissingValue)
}

func TestJacobianFactorErrorMultiDim(t *testing.T) {
	f, err := gaussian.NewJacobianFactor([]float64{1, 2},
		gaussian.Term{Key: 5, A: mat.NewDense(2, 2, []float64{1, 0, 0, 2})})
	require.NoError(t, err)

	v := gaussian.NewVectorValues()
	require.NoError(t, v.Insert(5, 1, 1))
	e, err := f.Error(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, e, 1e-12)

	w := gaussian.NewVectorValues()
	require.NoError(t, w.Insert(5, 2, 0))
	e, err = f.Error(w)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, e, 1e-12)
}

func TestJacobianFactorErrorRejectsBadAssignment(t *testing.T) {
	f := between(t, 0, 1)

	_, err := f.Error(vv(t, 1))
	assert.ErrorIs(t, err, gaussian.ErrMissingValue)

	v := gaussian.NewVectorValues()
	require.NoError(t, v.Insert(0, 1, 2))
	require.NoError(t, v.Insert(1, 0))
	_, err = f.Error(v)
	assert.ErrorIs(t, err, gaussian.ErrShape)
}

func TestStackUnionScope(t *testing.T) {
	stacked, err := gaussian.Stack(prior(t, 0, 5), between(t, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, []core.Key{0, 1}, stacked.Keys())
	assert.Equal(t, 2, stacked.Rows())

	a0 := stacked.A(0)
	require.NotNil(t, a0)
	assert.Equal(t, 1.0, a0.At(0, 0))
	assert.Equal(t, -1.0, a0.At(1, 0))

	a1 := stacked.A(1)
	require.NotNil(t, a1)
	assert.Equal(t, 0.0, a1.At(0, 0))
	assert.Equal(t, 1.0, a1.At(1, 0))

	b := stacked.B()
	assert.Equal(t, 5.0, b.AtVec(0))
	assert.Equal(t, 0.0, b.AtVec(1))
}

func TestStackRejectsWidthConflict(t *testing.T) {
	wide, err := gaussian.NewJacobianFactor([]float64{0},
		gaussian.Term{Key: 0, A: mat.NewDense(1, 2, []float64{1, 0})})
	require.NoError(t, err)

	_, err = gaussian.Stack(prior(t, 0, 0), wide)
	assert.ErrorIs(t, err, gaussian.ErrDimMismatch)
}

func TestStackRejectsNilFactor(t *testing.T) {
	_, err := gaussian.Stack(prior(t, 0, 0), nil)
	assert.ErrorIs(t, err, core.ErrEmptySlot)
}
