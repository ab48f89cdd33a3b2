package hybrid

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Family adapts the hybrid types to the generic elimination machinery.
var Family = core.Family[Factor, *Conditional]{
	Eliminate:  Eliminate,
	ToFactor:   toFactor,
	OrphanStub: orphanStub,
}

// toFactor rewrites a conditional as a factor over its full scope. A
// mixture's branches keep their relative normalization as branch constants;
// otherwise selecting a well-normalized mode would look exactly as good as
// selecting a poorly normalized one.
func toFactor(c *Conditional) Factor {
	switch {
	case c.cont != nil:
		return Continuous{c.cont.AsJacobian()}
	case c.disc != nil:
		return Modal{c.disc.AsTable()}
	default:
		m := c.mix
		branches := make([]*gaussian.JacobianFactor, len(m.branches))
		consts := make([]float64, len(m.branches))
		for i, b := range m.branches {
			branches[i] = b.AsJacobian()
			consts[i] = b.NegLogConstant() - m.negLogConst
		}
		out, err := NewMixture(m.modes, branches, consts)
		if err != nil {
			panic(fmt.Sprintf("hybrid: conditional as factor: %v", err))
		}

		return out
	}
}

// orphanStub builds a no-op factor whose scope is a conditional's parents,
// keeping detached subtree roots connected during incremental reattachment.
func orphanStub(c *Conditional) Factor {
	switch {
	case c.cont != nil:
		return Continuous{gaussian.Family.OrphanStub(c.cont)}
	case c.disc != nil:
		return Modal{discrete.Family.OrphanStub(c.disc)}
	default:
		m := c.mix
		if m.ncp == 0 {
			// Parents are modes only; the uniform table is the identity.
			size := 1
			for _, dk := range m.modes {
				size *= dk.Card
			}
			ones := make([]float64, size)
			for i := range ones {
				ones[i] = 1
			}
			tf, err := discrete.NewTableFactor(m.DiscreteKeys(), ones)
			if err != nil {
				panic(fmt.Sprintf("hybrid: orphan stub table: %v", err))
			}

			return Modal{tf}
		}

		// Zero rows over the continuous parents in every branch: no
		// constraint, but the parent scope stays visible to reordering.
		stub := gaussian.Family.OrphanStub(m.branches[0])
		branches := make([]*gaussian.JacobianFactor, len(m.branches))
		for i := range branches {
			branches[i] = stub
		}
		out, err := NewMixture(m.DiscreteKeys(), branches, nil)
		if err != nil {
			panic(fmt.Sprintf("hybrid: orphan stub mixture: %v", err))
		}

		return out
	}
}
