// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/factree/gaussian"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid builds a rows×cols lattice of scalar variables with a smoothness
// link between every pair of horizontal and vertical neighbours and a
// prior anchoring the first cell. Cell (r, c) maps to key(r*cols + c).
//
// The lattice is the standard nested-dissection workload: its separators
// are grid lines, so NestedDissectionOrder keeps clique sizes near
// O(min(rows, cols)) while Natural orderings fill in badly.
//
// Measurements are zero by default; WithSeed draws them from N(0, σ²).
//
// Time and space O(rows·cols).
func Grid(rows, cols int, opts ...Option) (*gaussian.FactorGraph, error) {
	if rows < minGridDim || cols < minGridDim {
		return nil, fmt.Errorf("%s: rows=%d cols=%d < min=%d: %w",
			methodGrid, rows, cols, minGridDim, ErrTooFewVariables)
	}
	cfg := newBuilderConfig(opts...)

	g := gaussian.NewFactorGraph()
	anchor, err := priorFactor(cfg, cfg.key(0), cfg.measurement())
	if err != nil {
		return nil, fmt.Errorf("%s: prior: %w", methodGrid, err)
	}
	g.Add(anchor)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if c > 0 {
				f, err := betweenFactor(cfg, cfg.key(i-1), cfg.key(i), cfg.measurement())
				if err != nil {
					return nil, fmt.Errorf("%s: row link %d: %w", methodGrid, i, err)
				}
				g.Add(f)
			}
			if r > 0 {
				f, err := betweenFactor(cfg, cfg.key(i-cols), cfg.key(i), cfg.measurement())
				if err != nil {
					return nil, fmt.Errorf("%s: column link %d: %w", methodGrid, i, err)
				}
				g.Add(f)
			}
		}
	}

	return g, nil
}
