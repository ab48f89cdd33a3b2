package discrete

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/factree/core"
)

// defaultSampleSeed seeds the fallback rng of Sample when the caller
// passes nil. Fixed so unseeded runs stay reproducible.
const defaultSampleSeed int64 = 1

// BayesNet is a discrete Bayes net: the conditionals of a sequential
// elimination in elimination order, with evaluation, decoding and
// sampling on top of the shared container.
type BayesNet struct {
	*core.BayesNet[*Conditional]
}

// NewBayesNet builds a net from conditionals already in elimination order.
func NewBayesNet(conds ...*Conditional) *BayesNet {
	return &BayesNet{core.NewBayesNet(conds...)}
}

// Value evaluates P(v), the product of the conditionals. Every variable
// of the net must be assigned.
func (bn *BayesNet) Value(v Values) (float64, error) {
	lp, err := bn.LogProbability(v)
	if err != nil {
		return 0, err
	}

	return math.Exp(lp), nil
}

// LogProbability evaluates ln P(v), the sum of the conditional log
// densities. Zero-probability assignments yield -Inf.
func (bn *BayesNet) LogProbability(v Values) (float64, error) {
	total := 0.0
	for i := 0; i < bn.Len(); i++ {
		lp, err := bn.At(i).LogProbability(v)
		if err != nil {
			return 0, err
		}
		total += lp
	}

	return total, nil
}

// Optimize decodes an assignment by taking each conditional's argmax given
// the parents decoded before it, from the last eliminated (the root) down.
// Over a net from EliminateMax this is the most probable explanation; over
// a sum-product net it is only a greedy decode.
func (bn *BayesNet) Optimize() (Values, error) {
	acc := make(Values)
	for i := bn.Len() - 1; i >= 0; i-- {
		sol, err := bn.At(i).ArgMax(acc)
		if err != nil {
			return nil, fmt.Errorf("discrete: optimize conditional %d: %w", i, err)
		}
		if err := mergeValues(acc, sol); err != nil {
			return nil, fmt.Errorf("discrete: optimize conditional %d: %w", i, err)
		}
	}

	return acc, nil
}

// Sample draws one joint assignment by ancestral sampling from the root
// down. A nil rng falls back to a fixed-seed source.
func (bn *BayesNet) Sample(rng *rand.Rand) (Values, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultSampleSeed))
	}
	acc := make(Values)
	for i := bn.Len() - 1; i >= 0; i-- {
		sol, err := bn.At(i).SampleWithRNG(acc, rng)
		if err != nil {
			return nil, fmt.Errorf("discrete: sample conditional %d: %w", i, err)
		}
		if err := mergeValues(acc, sol); err != nil {
			return nil, fmt.Errorf("discrete: sample conditional %d: %w", i, err)
		}
	}

	return acc, nil
}
