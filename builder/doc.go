// SPDX-License-Identifier: MIT

// Package builder constructs small deterministic factor graphs for tests,
// benchmarks and examples.
//
// Constructors:
//
//   - Chain(n):            anchored pose chain, a unit-information prior on
//     the first variable plus n−1 odometry links.
//   - Diamond():           the five-variable loop whose fill-minimizing
//     elimination produces exactly two cliques.
//   - Grid(rows, cols):    planar lattice of smoothness links, anchored at
//     the first cell; the standard nested-dissection workload.
//   - MarkovChain(n, card): discrete chain, a prior on the first state plus
//     n−1 transition tables.
//
// Options (shared across constructors):
//
//   - WithSigma(σ):      measurement noise, rows are whitened by 1/σ.
//     Gaussian builders only.
//   - WithSeed(seed):    draw measurement values (Gaussian builders) or
//     table cells (MarkovChain) from a seeded rng; seed 0 means the fixed
//     default seed, never the clock. Without a seed every right-hand side
//     is zero and every table is the sticky-uniform default.
//   - WithFirstIndex(i): index of the first variable.
//   - WithSymbolChr(c):  produce core.Symbol(c, index) keys instead of
//     plain integers.
//
// Guarantees:
//
//   - Deterministic: identical arguments and options produce identical
//     graphs, factor by factor.
//   - Option constructors validate eagerly and panic on meaningless
//     values; constructors themselves return only sentinel-wrapped errors.
package builder
