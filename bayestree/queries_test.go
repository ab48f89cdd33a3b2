package bayestree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

func TestMarginalFactorEveryChainKey(t *testing.T) {
	bt := chainTree(t)
	for _, k := range []core.Key{0, 1, 2} {
		f, err := bt.MarginalFactor(k)
		require.NoError(t, err)
		assert.Equal(t, []core.Key{k}, f.Keys(), "marginal of %d", k)
	}
}

func TestMarginalFactorDiamondLeaf(t *testing.T) {
	bt := diamondTree(t)
	f, err := bt.MarginalFactor(0)
	require.NoError(t, err)
	assert.Equal(t, []core.Key{0}, f.Keys())
}

func TestMarginalFactorRepeatedCallsAgree(t *testing.T) {
	bt := fiveChainTree(t)
	first, err := bt.MarginalFactor(0)
	require.NoError(t, err)
	second, err := bt.MarginalFactor(0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarginalFactorUnknownKey(t *testing.T) {
	bt := chainTree(t)
	_, err := bt.MarginalFactor(42)
	assert.ErrorIs(t, err, bayestree.ErrUnknownKey)
}

func TestJointFactorGraphSameClique(t *testing.T) {
	bt := chainTree(t)
	g, err := bt.JointFactorGraph(1, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, g.NumFactors())
	assert.Equal(t, []core.Key{1, 2}, g.Keys())
}

func TestJointFactorGraphAcrossCliques(t *testing.T) {
	bt := chainTree(t)
	g, err := bt.JointFactorGraph(0, 2)
	require.NoError(t, err)

	assert.Equal(t, []core.Key{0, 2}, g.Keys())
	for _, f := range g.Factors() {
		assert.Subset(t, []core.Key{0, 2}, f.Keys())
	}
}

func TestJointFactorGraphDiamondLeafToRootKey(t *testing.T) {
	bt := diamondTree(t)
	g, err := bt.JointFactorGraph(0, 1)
	require.NoError(t, err)

	assert.Equal(t, []core.Key{0, 1}, g.Keys())
}

func TestJointFactorGraphDisconnectedKeys(t *testing.T) {
	bt := buildTree(t, symFamily(), ordering.Ordering{0, 1}, sf(0), sf(1))
	require.Equal(t, 2, bt.NumCliques())

	g, err := bt.JointFactorGraph(0, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, g.NumFactors())
	assert.Equal(t, []core.Key{0, 1}, g.Keys())
}

func TestJointFactorGraphSameKeyTwice(t *testing.T) {
	bt := chainTree(t)
	g, err := bt.JointFactorGraph(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.Key{2}, g.Keys())
}

func TestJointFactorGraphUnknownKey(t *testing.T) {
	bt := chainTree(t)
	_, err := bt.JointFactorGraph(0, 77)
	assert.ErrorIs(t, err, bayestree.ErrUnknownKey)
}
