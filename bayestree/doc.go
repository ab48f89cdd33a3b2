// Package bayestree assembles per-clique elimination results into a Bayes
// tree: a directed tree of cliques in which every variable is frontal in
// exactly one clique and every clique's separator is contained in its
// parent's scope (the running intersection property). The tree is both the
// output of multifrontal elimination and a reusable structure for marginal
// and joint queries and for incremental re-elimination.
//
// EliminateMultifrontal is the one-call pipeline: it builds the variable
// index, the elimination tree and the junction tree, eliminates every
// cluster with the family's eliminator and wires the results into a Tree.
// Callers that already hold junction.CliqueResult slices use New directly.
//
// Queries
//
// CliqueOf finds the clique where a key is frontal in O(1). MarginalFactor
// returns the unary marginal on one key by recursively marginalizing
// separator distributions down from the root; the per-clique separator
// marginals are memoized, so repeated queries against an unchanged tree do
// not repeat elimination work. JointFactorGraph returns the joint marginal
// over two keys via their lowest shared ancestor, or as a product of two
// independent marginals when the keys live in different trees of the
// forest.
//
// Incremental updates
//
// RemoveTop detaches every clique on the root paths of a key set and hands
// back their conditionals (root first) together with the orphaned subtree
// roots. Update folds new factors into the tree: it removes the affected
// top, re-eliminates the removed conditionals as factors alongside the new
// factors and one structural stub per orphan separator, grafts the fresh
// cliques and re-attaches each orphan under the clique holding its earliest
// eliminated separator key. The rest of the tree is untouched.
//
// A Tree is not safe for concurrent use: queries mutate memoized state and
// updates restructure the arena.
//
// Malformed inputs (nil graphs, incomplete families, broken clique results)
// come back as errors; numerical degeneracy inside an eliminator surfaces
// as *core.IndeterminateError. Indexing a removed or out-of-range clique
// position panics, as that is arena misuse by the caller.
package bayestree
