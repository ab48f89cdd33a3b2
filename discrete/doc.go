// Package discrete implements the table-CPD elimination family over dense
// potential tables.
//
// A TableFactor holds a nonnegative potential over a sorted scope of
// finite-cardinality variables, stored row-major with the last key
// fastest. Eliminating frontal variables multiplies the gathered tables
// (max-scaled against underflow), reduces the frontals out by sum
// (EliminateSum, the probabilistic default) or by max (EliminateMax, for
// most-probable-explanation queries) and normalizes the remaining column
// into a Conditional. A parent assignment whose column reduces to zero has
// no valid conditional and surfaces as *core.IndeterminateError.
//
// SumProduct and MaxProduct run the whole sequential pipeline over a
// factor graph; EliminateSequential and EliminateMultifrontal mirror the
// gaussian package and wrap the results as BayesNet and BayesTree with
// evaluation, sampling, greedy argmax decoding and normalized marginals.
//
// All operations are deterministic: scopes are sorted ascending, argmax
// ties break toward the lowest joint index, and sampling takes an explicit
// *rand.Rand.
package discrete
