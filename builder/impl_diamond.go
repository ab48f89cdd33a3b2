// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/gaussian"
)

const methodDiamond = "Diamond"

// Diamond builds the five-variable loop used as the multifrontal worked
// scenario:
//
//	        key(2)
//	       /      \
//	key(0)         key(4) — key(1)
//	       \      /
//	        key(3)
//
// key(0) observes both landmarks key(2) and key(3), both landmarks are
// observed again from key(4), and key(1) hangs off key(4) by odometry. A
// prior anchors key(0). Under the fill-minimizing order the graph
// multifrontalizes into exactly two cliques, [key(0) | key(2) key(3)]
// below the root over the remaining four variables.
//
// Measurements are zero by default; WithSeed draws them from N(0, σ²).
func Diamond(opts ...Option) (*gaussian.FactorGraph, error) {
	cfg := newBuilderConfig(opts...)

	var (
		anchor = cfg.key(0) // pose held by the prior
		odo    = cfg.key(1) // pose linked only through the loop closer
		lmA    = cfg.key(2) // landmark on the upper path
		lmB    = cfg.key(3) // landmark on the lower path
		closer = cfg.key(4) // pose closing the loop
	)

	g := gaussian.NewFactorGraph()
	pri, err := priorFactor(cfg, anchor, cfg.measurement())
	if err != nil {
		return nil, fmt.Errorf("%s: prior: %w", methodDiamond, err)
	}
	g.Add(pri)

	links := [...][2]core.Key{
		{anchor, lmA},
		{anchor, lmB},
		{lmA, closer},
		{lmB, closer},
		{odo, closer},
	}
	for _, l := range links {
		f, err := betweenFactor(cfg, l[0], l[1], cfg.measurement())
		if err != nil {
			return nil, fmt.Errorf("%s: link %s-%s: %w", methodDiamond, l[0], l[1], err)
		}
		g.Add(f)
	}

	return g, nil
}
