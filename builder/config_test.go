// SPDX-License-Identifier: MIT

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/builder"
)

func TestOptionConstructorsPanic(t *testing.T) {
	assert.Panics(t, func() { builder.WithSigma(0) })
	assert.Panics(t, func() { builder.WithSigma(-1) })
	assert.Panics(t, func() { builder.WithSymbolChr('1') })
	assert.Panics(t, func() { builder.WithSymbolChr(0) })

	assert.NotPanics(t, func() { builder.WithSymbolChr('x') })
	assert.NotPanics(t, func() { builder.WithSymbolChr('L') })
	assert.NotPanics(t, func() { builder.WithSigma(0.1) })
}

func TestWithSeedZeroUsesFixedDefault(t *testing.T) {
	a, err := builder.Chain(3, builder.WithSeed(0))
	require.NoError(t, err)
	b, err := builder.Chain(3, builder.WithSeed(0))
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		assert.True(t, mat.Equal(a.At(i).Augmented(), b.At(i).Augmented()), "factor %d", i)
	}
}

func TestUnseededMeasurementsAreZero(t *testing.T) {
	g, err := builder.Chain(4)
	require.NoError(t, err)
	for i := 0; i < g.Len(); i++ {
		assert.Zero(t, g.At(i).B().AtVec(0), "factor %d", i)
	}
}
