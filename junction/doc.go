// Package junction groups elimination-tree nodes into clusters and runs
// multifrontal elimination over the resulting junction tree.
//
// Sequential elimination produces one conditional per variable; the
// junction tree instead merges a node into its parent whenever the child's
// separator is exactly the parent's separator plus the parent variable.
// Merged clusters eliminate several frontal variables in one call, which
// turns many small eliminations into fewer, denser ones and exposes
// subtree parallelism.
//
// The merge rule compares node-level symbolic separators: a child with
// separator S_c joins parent node j with separator S_j exactly when
// S_c = {j} ∪ S_j. Running intersection already guarantees
// S_c ⊆ {j} ∪ S_j, so the check reduces to |S_c| = |S_j| + 1. Eliminators
// that cannot mix certain variables in one conditional can veto merges
// with WithMergeBarrier.
//
// Entry points:
//
//	Build               cluster an elimination tree (symbolic pass + merges)
//	EliminateClusters   run an eliminator over every cluster
//
// EliminateClusters returns plain per-cluster results (conditional, parent
// index, cached separator factor); the bayestree package assembles them
// into its clique arena.
//
// Concurrency: WithWorkers(n) drains a dependency-counted ready queue with
// an errgroup worker pool. A cluster becomes ready when all of its
// children have been eliminated, child separator factors land in fixed
// per-child slots, and the results match the serial sweep exactly. The
// first eliminator error cancels the pool and is returned. WithContext
// makes both the serial and the parallel path cancelable.
package junction
