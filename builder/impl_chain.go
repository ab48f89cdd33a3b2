// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/factree/gaussian"
)

const (
	methodChain   = "Chain"
	minChainPoses = 2
)

// Chain builds the anchored pose chain over n scalar variables: one prior
// pinning the first pose and n−1 odometry links between neighbours.
//
// Measurements are zero by default, so the exact solution puts every pose
// at zero; WithSeed replaces them with N(0, σ²) draws. Keys run from
// key(0) to key(n−1) under the configured scheme.
//
// Time O(n), space O(n).
func Chain(n int, opts ...Option) (*gaussian.FactorGraph, error) {
	if n < minChainPoses {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainPoses, ErrTooFewVariables)
	}
	cfg := newBuilderConfig(opts...)

	g := gaussian.NewFactorGraph()
	anchor, err := priorFactor(cfg, cfg.key(0), cfg.measurement())
	if err != nil {
		return nil, fmt.Errorf("%s: prior: %w", methodChain, err)
	}
	g.Add(anchor)

	for i := 1; i < n; i++ {
		odo, err := betweenFactor(cfg, cfg.key(i-1), cfg.key(i), cfg.measurement())
		if err != nil {
			return nil, fmt.Errorf("%s: odometry %d: %w", methodChain, i, err)
		}
		g.Add(odo)
	}

	return g, nil
}
