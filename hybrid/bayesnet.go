package hybrid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// BayesNet is a hybrid Bayes net: the conditionals of a sequential
// elimination in elimination order. With continuous variables ordered
// before modes the net is a conditional linear-Gaussian density, discrete
// conditionals at the root end and Gaussians or mixtures below.
type BayesNet struct {
	*core.BayesNet[*Conditional]
}

// NewBayesNet builds a net from conditionals already in elimination order.
func NewBayesNet(conds ...*Conditional) *BayesNet {
	return &BayesNet{core.NewBayesNet(conds...)}
}

// Value evaluates the joint density at v, the product of the conditionals.
// Every variable of the net must be assigned.
func (bn *BayesNet) Value(v Values) (float64, error) {
	lp, err := bn.LogProbability(v)
	if err != nil {
		return 0, err
	}

	return math.Exp(lp), nil
}

// LogProbability evaluates the log joint density at v, the sum of the
// conditional log densities. Impossible mode assignments yield -Inf.
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

// Error sums the conditional errors at v. Unlike LogProbability it skips
// the normalization constants.
func (bn *BayesNet) Error(v Values) (float64, error) {
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

// Optimize decodes a joint assignment from the last eliminated conditional
// (the root) down: discrete conditionals by argmax given the modes decoded
// before them, Gaussians by back-substitution, mixtures by back-substituting
// the branch the decoded modes select. Discrete conditionals sit at the root
// end of a constrained-order net, so every mode is fixed before the mixture
// that needs it.
func (bn *BayesNet) Optimize() (Values, error) {
	acc := NewValues()
	for i := bn.Len() - 1; i >= 0; i-- {
		if err := solveInto(acc, bn.At(i)); err != nil {
			return Values{}, fmt.Errorf("hybrid: optimize conditional %d: %w", i, err)
		}
	}

	return acc, nil
}

// solveInto decodes one conditional into acc.
func solveInto(acc Values, c *Conditional) error {
	switch {
	case c.disc != nil:
		sol, err := c.disc.ArgMax(acc.Discrete)
		if err != nil {
			return err
		}

		return mergeDiscrete(acc.Discrete, sol)
	case c.cont != nil:
		sol, err := c.cont.Solve(acc.Continuous)
		if err != nil {
			return err
		}

		return mergeContinuous(acc.Continuous, sol)
	default:
		gc, err := c.mix.Choose(acc.Discrete)
		if err != nil {
			return err
		}
		sol, err := gc.Solve(acc.Continuous)
		if err != nil {
			return err
		}

		return mergeContinuous(acc.Continuous, sol)
	}
}

// mergeDiscrete copies src into dst, rejecting keys decoded twice.
func mergeDiscrete(dst, src discrete.Values) error {
	for k, s := range src {
		if _, ok := dst[k]; ok {
			return fmt.Errorf("%w: %s decoded twice", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		dst[k] = s
	}

	return nil
}

// mergeContinuous copies src into dst, rejecting keys solved twice.
func mergeContinuous(dst, src gaussian.VectorValues) error {
	for k, x := range src {
		if _, ok := dst[k]; ok {
			return fmt.Errorf("%w: %s solved twice", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		dst[k] = x
	}

	return nil
}
