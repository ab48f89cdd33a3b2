// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
)

// BayesTree is a linear-Gaussian Bayes tree. It adds dense solve and
// marginal recovery on top of the generic clique tree; queries and
// incremental updates (MarginalFactor, JointFactorGraph, RemoveTop,
// Update) are promoted from the embedded tree.
type BayesTree struct {
	*bayestree.Tree[*JacobianFactor, *Conditional]
}

// Optimize solves every clique conditional top-down and returns the joint
// mean. Parents are always solved before children, so each back
// substitution sees its separator values.
func (bt *BayesTree) Optimize() (VectorValues, error) {
	acc := make(VectorValues)
	stack := append([]int(nil), bt.Roots()...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := bt.Clique(i)
		sol, err := c.Conditional.Solve(acc)
		if err != nil {
			return nil, fmt.Errorf("gaussian: optimize clique %d: %w", i, err)
		}
		if err := mergeSolution(acc, sol); err != nil {
			return nil, fmt.Errorf("gaussian: optimize clique %d: %w", i, err)
		}
		stack = append(stack, c.Children...)
	}

	return acc, nil
}

// Marginal returns the mean and covariance of the single variable k,
// recovered from its marginal square-root factor [R | d] as μ = R⁻¹d and
// Σ = R⁻¹R⁻ᵀ.
func (bt *BayesTree) Marginal(k core.Key) (*mat.VecDense, *mat.SymDense, error) {
	f, err := bt.MarginalFactor(k)
	if err != nil {
		return nil, nil, err
	}
	width, _ := f.Dim(k)
	if f.Rows() != width {
		return nil, nil, fmt.Errorf("gaussian: marginal of %s has %d rows for width %d",
			core.DefaultKeyFormatter(k), f.Rows(), width)
	}

	mean := mat.NewVecDense(width, nil)
	for i := width - 1; i >= 0; i-- {
		s := f.ab.At(i, width)
		for j := i + 1; j < width; j++ {
			s -= f.ab.At(i, j) * mean.AtVec(j)
		}
		mean.SetVec(i, s/f.ab.At(i, i))
	}

	// Σ = X·Xᵀ with X solving R·X = I.
	x := mat.NewDense(width, width, nil)
	for c := 0; c < width; c++ {
		for i := width - 1; i >= 0; i-- {
			s := 0.0
			if i == c {
				s = 1
			}
			for j := i + 1; j < width; j++ {
				s -= f.ab.At(i, j) * x.At(j, c)
			}
			x.Set(i, c, s/f.ab.At(i, i))
		}
	}
	var sig mat.Dense
	sig.Mul(x, x.T())
	cov := mat.NewSymDense(width, nil)
	for i := 0; i < width; i++ {
		for j := i; j < width; j++ {
			cov.SetSym(i, j, sig.At(i, j))
		}
	}

	return mean, cov, nil
}
