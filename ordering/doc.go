// Package ordering computes elimination orderings over the variables of a
// factor graph, as described by a core.VariableIndex.
//
// The order in which variables are eliminated decides how much fill-in the
// elimination produces, and with it the size of every conditional, clique
// and separator downstream. The package offers three built-in strategies
// plus validated custom lists:
//
//   - MinFill — greedy fill-in minimizing: repeatedly eliminate the variable
//     whose elimination adds the fewest new edges to the (lazily filled)
//     variable adjacency graph; ties break on the smaller key. The classic
//     COLAMD-style default for arbitrary graphs.
//   - NestedDissection — recursive balanced bisection: split the adjacency
//     graph along a BFS level separator, order both interiors first and the
//     separator last, recurse. The METIS-style choice for large planar-ish
//     problems.
//   - Natural — the order in which variables first entered the
//     VariableIndex.
//   - FromKeys — caller-provided order, validated against the index
//     (every indexed variable exactly once, no unknowns).
//
// Every strategy is deterministic: same index, same ordering, every run.
//
// Complexity: MinFill runs in O(V·d²·log V) for maximum degree d;
// NestedDissection in O((V+E)·log V); Natural in O(V).
//
// Typical use:
//
//	vi, _ := core.NewVariableIndex(graph)
//	ord, err := ordering.Compute(vi, ordering.MinFillOrder)
//	if err != nil { ... }
//	bn, _, err := elimtree.EliminateSequential(graph, ord, gaussian.EliminateQR)
//
// Errors: ErrUnknownAlgorithm from Compute's default branch;
// ErrDuplicateKey, ErrIncompleteOrdering, ErrUnknownKey from FromKeys;
// core.ErrNilIndex whenever the index is nil.
package ordering
