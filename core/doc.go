// Package core provides the vocabulary of factor-graph inference: keys,
// factors, conditionals, factor graphs, variable indices and Bayes nets,
// plus the pluggable elimination capability every factor family registers.
//
// The model is the classic one: a factor graph holds factors φᵢ over
// subsets of variables, and eliminating variable j rewrites the product
// of all factors touching j into a conditional P(j | separator) times a
// new factor over the separator. Everything above core/ (orderings, trees,
// families) is built from these contracts:
//
//   - Key / Symbol — opaque uint64 variable ids, with an optional
//     human-readable char+index packing ("x0", "l7") for tests and DOT output.
//   - Factor — anything with a deterministic, duplicate-free Keys() scope.
//   - Conditional — a Factor whose keys split into frontals ++ parents.
//   - FactorGraph[F] — ordered, possibly-sparse collection of factors;
//     removal leaves a hole so positions stay stable.
//   - VariableIndex — key → ordered factor positions; remembers first-seen
//     key order so the natural elimination ordering is reproducible.
//   - Eliminate[F, C] — the dense per-family elimination callback:
//     factors × frontal keys → (conditional, separator factor).
//   - Family[F, C] — Eliminate plus the two conversions the Bayes-tree
//     machinery needs (conditional-as-factor, orphan separator stub).
//   - BayesNet[C] — conditionals in elimination order, the output of
//     sequential elimination.
//
// Why use core?
//
//   - Single vocabulary, many families — gaussian/, discrete/ and hybrid/
//     all plug in through Eliminate without the engines knowing them.
//   - Deterministic iteration — Keys(), VariableIndex.KeysSorted() and
//     every renderer return stable orders.
//   - Honest failure modes — configuration problems come back as sentinel
//     errors; numerical degeneracy is the distinct ErrIndeterminateSystem
//     kind carrying the offending keys; only internal invariant violations
//     panic.
//
// Core types and operations:
//
//	// Keys
//	Symbol(chr, index) Key            // packs 'x',1 into a Key
//	SymbolChr/SymbolIndex(Key)        // unpack
//	DefaultKeyFormatter(Key) string   // "x1" when packed, "42" otherwise
//
//	// FactorGraph[F]
//	Add(f) int                        // O(1), returns position
//	AddGraph(other)                   // O(n), appends non-hole factors
//	At(i) F / Exists(i) bool          // O(1); At panics on holes
//	Remove(i)                         // O(1), leaves a hole
//	Len() / NumFactors()              // slots vs live factors
//	Factors() []F                     // O(n) dense snapshot
//	Keys() []Key                      // O(total scope · log) sorted union
//
//	// VariableIndex
//	NewVariableIndex(g)               // O(total scope)
//	AugmentIndex(vi, g, positions…)   // O(added scope)
//	RemoveFromIndex(vi, g, positions…)// O(removed scope)
//	Factors(key) []int                // ordered positions, nil if unknown
//	Keys() / KeysSorted()             // first-seen vs sorted
//
//	// BayesNet[C]
//	Push(c) / At(i) / Len()
//	Frontals() []Key                  // frontal keys in elimination order
//	Keys() []Key                      // sorted union incl. parents
//	WriteDOT(w, formatter)            // GraphViz rendering
//
// Errors:
//
//	ErrNilGraph             – nil *FactorGraph passed to a constructor/engine
//	ErrNilIndex             – nil *VariableIndex
//	ErrEmptySlot            – operation needs a factor that was removed
//	ErrIndeterminateSystem  – numerical degeneracy during elimination;
//	                          match with errors.Is, inspect keys via
//	                          *IndeterminateError and errors.As
//
// Out-of-range positions are programming errors and panic; they are not
// part of the recoverable error surface.
package core
