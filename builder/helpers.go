// SPDX-License-Identifier: MIT

package builder

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/gaussian"
)

// priorFactor builds the whitened unary row ½((x_k − z)/σ)².
func priorFactor(cfg builderConfig, k core.Key, z float64) (*gaussian.JacobianFactor, error) {
	w := 1 / cfg.sigma

	return gaussian.NewJacobianFactor([]float64{z * w},
		gaussian.Term{Key: k, A: mat.NewDense(1, 1, []float64{w})})
}

// betweenFactor builds the whitened relative row ½((x_to − x_from − z)/σ)².
func betweenFactor(cfg builderConfig, from, to core.Key, z float64) (*gaussian.JacobianFactor, error) {
	w := 1 / cfg.sigma

	return gaussian.NewJacobianFactor([]float64{z * w},
		gaussian.Term{Key: from, A: mat.NewDense(1, 1, []float64{-w})},
		gaussian.Term{Key: to, A: mat.NewDense(1, 1, []float64{w})})
}
