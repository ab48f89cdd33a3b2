// Package factree is your in-memory toolkit for exact inference on factor
// graphs — variable elimination from ordering heuristics all the way to
// Bayes trees and incremental updates.
//
// 🚀 What is factree?
//
//	A deterministic, generics-first library that brings together:
//		• Core primitives: keys, factors, factor graphs, variable indices
//		• Orderings: fill-in minimizing, nested dissection, natural, custom
//		• Elimination tree: sequential elimination into a Bayes net
//		• Junction tree: clique merging + multifrontal elimination
//		• Bayes tree: marginals, joints, removeTop incremental updates
//		• Families: linear-Gaussian (gonum), discrete tables, hybrid CLG
//
// ✨ Why choose factree?
//
//   - Pluggable – one Eliminate callback turns any factor family generic
//   - Deterministic – same inputs, same ordering, same tree, every run
//   - Honest errors – sentinel config errors, typed indeterminate-system
//     errors, panics only for internal invariant violations
//   - Parallel when asked – multifrontal subtrees fan out on errgroup
//
// Under the hood, everything is organized under these subpackages:
//
//	core/      — Key/Symbol, Factor & Conditional contracts, FactorGraph,
//	             VariableIndex, BayesNet, the Eliminate/Family capability
//	ordering/  — elimination-order strategies + validation
//	elimtree/  — elimination tree, sequential (partial) elimination
//	junction/  — junction tree, multifrontal elimination
//	bayestree/ — Bayes tree queries and incremental removeTop
//	gaussian/  — linear-Gaussian family on gonum/mat (QR, Cholesky)
//	discrete/  — table CPD family (sum- and max-product)
//	hybrid/    — conditional linear-Gaussian mixtures
//	builder/   — deterministic fixture graphs (chain, diamond, grid, ...)
//
// Quick ASCII example:
//
//	    x0 ── x1 ── x2        eliminate x0, then x1, then x2
//	                          P(x0|x1)·P(x1|x2)·P(x2)
//
//	a three-pose chain becomes a Bayes net of three conditionals.
//
// Next up: nonlinear/ (Gauss-Newton and Levenberg-Marquardt drivers) and
// beyond. Dive into README.md for full examples and the feature matrix.
//
//	go get github.com/katalvlaran/factree
package factree
