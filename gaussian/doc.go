// SPDX-License-Identifier: MIT

// Package gaussian implements the linear-Gaussian elimination family on
// dense gonum matrices.
//
// A JacobianFactor stores a whitened measurement block row [A | b] split
// into per-variable columns; its error is ½‖Ax−b‖². Eliminating frontal
// variables factorizes the stacked rows and splits the triangular result
// at the frontal width: the top rows become a Conditional
// P(frontals | separator) with an upper-triangular R, parent blocks S and
// right-hand side d, the rows below become the new factor on the
// separator. EliminateQR (the default) handles rank-deficient separators;
// EliminateCholesky is the faster path for well-constrained systems.
// Rank deficiency over the frontal variables is numerical degeneracy and
// surfaces as *core.IndeterminateError.
//
// Family and FamilyCholesky bundle the eliminators with the
// conditional-to-factor conversions the tree engines need.
// EliminateSequential and EliminateMultifrontal run the whole pipeline
// over a factor graph and wrap the results as BayesNet and BayesTree with
// Optimize, Sample and marginal queries on top.
//
// All operations are deterministic: scopes keep construction order,
// separators are sorted ascending, triangular factors are normalized to a
// positive diagonal, and sampling takes an explicit *rand.Rand.
package gaussian
