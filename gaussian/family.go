// SPDX-License-Identifier: MIT

package gaussian

import "github.com/katalvlaran/factree/core"

// Family bundles the default QR elimination capabilities for the tree
// engines. Callers that want the normal-equation path swap in
// FamilyCholesky, or build their own bundle around a custom eliminator.
var Family = core.Family[*JacobianFactor, *Conditional]{
	Eliminate:  EliminateQR,
	ToFactor:   (*Conditional).AsJacobian,
	OrphanStub: orphanStub,
}

// FamilyCholesky is Family with EliminateCholesky as the eliminator.
var FamilyCholesky = core.Family[*JacobianFactor, *Conditional]{
	Eliminate:  EliminateCholesky,
	ToFactor:   (*Conditional).AsJacobian,
	OrphanStub: orphanStub,
}

// orphanStub builds a rowless factor over the parents of a detached
// clique's conditional. It adds no information; incremental re-elimination
// feeds it in so the detached separator stays inside one clique scope.
func orphanStub(c *Conditional) *JacobianFactor {
	return newZeroRowFactor(c.Parents(), c.dims[c.nf:])
}
