// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/factree/core"
)

// defaultSampleSeed seeds the fallback rng of Sample when the caller
// passes nil. Fixed so unseeded runs stay reproducible.
const defaultSampleSeed int64 = 1

// BayesNet is a linear-Gaussian Bayes net: the conditionals of a
// sequential elimination in elimination order, with dense solve and
// sampling on top of the shared container.
type BayesNet struct {
	*core.BayesNet[*Conditional]
}

// NewBayesNet builds a net from conditionals already in elimination order.
func NewBayesNet(conds ...*Conditional) *BayesNet {
	return &BayesNet{core.NewBayesNet(conds...)}
}

// Optimize back-substitutes the whole net and returns the joint mean,
// solving conditionals from the last eliminated (the root) down.
func (bn *BayesNet) Optimize() (VectorValues, error) {
	return bn.OptimizeGiven(nil)
}

// OptimizeGiven back-substitutes with the given assignment fixed. given
// must cover every parent key the net itself does not solve; passing a key
// the net solves is an ErrDuplicateKey.
func (bn *BayesNet) OptimizeGiven(given VectorValues) (VectorValues, error) {
	acc := given.Copy()
	if acc == nil {
		acc = make(VectorValues)
	}
	for i := bn.Len() - 1; i >= 0; i-- {
		sol, err := bn.At(i).Solve(acc)
		if err != nil {
			return nil, fmt.Errorf("gaussian: optimize conditional %d: %w", i, err)
		}
		if err := mergeSolution(acc, sol); err != nil {
			return nil, fmt.Errorf("gaussian: optimize conditional %d: %w", i, err)
		}
	}

	return acc, nil
}

// Sample draws one joint sample by ancestral sampling from the root down.
// A nil rng falls back to a fixed-seed source.
func (bn *BayesNet) Sample(rng *rand.Rand) (VectorValues, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultSampleSeed))
	}
	acc := make(VectorValues)
	for i := bn.Len() - 1; i >= 0; i-- {
		sol, err := bn.At(i).SampleWithRNG(acc, rng)
		if err != nil {
			return nil, fmt.Errorf("gaussian: sample conditional %d: %w", i, err)
		}
		if err := mergeSolution(acc, sol); err != nil {
			return nil, fmt.Errorf("gaussian: sample conditional %d: %w", i, err)
		}
	}

	return acc, nil
}

// Error sums the conditional errors ½‖Rx + Sp − d‖² at v.
func (bn *BayesNet) Error(v VectorValues) (float64, error) {
	total := 0.0
	for i := 0; i < bn.Len(); i++ {
		e, err := bn.At(i).Error(v)
		if err != nil {
			return 0, err
		}
		total += e
	}

	return total, nil
}

// LogProbability evaluates ln P(v) under the net, the sum of the
// conditional log densities.
func (bn *BayesNet) LogProbability(v VectorValues) (float64, error) {
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

// mergeSolution moves the solved frontal vectors into acc.
func mergeSolution(acc, sol VectorValues) error {
	for k, x := range sol {
		if _, ok := acc[k]; ok {
			return fmt.Errorf("%w: %s solved twice", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		acc[k] = x
	}

	return nil
}
