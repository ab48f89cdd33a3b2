// Package hybrid implements the conditional linear-Gaussian elimination
// family, mixing continuous variables with finite-cardinality modes.
//
// Three factor forms share one interface: Continuous wraps a Gaussian
// Jacobian factor, Modal wraps a discrete table, and Mixture holds one
// Jacobian branch per joint mode assignment plus an additive error
// constant, the density switching on whichever branch the modes select.
// Eliminate works one variable kind per call. Continuous frontals run a QR
// elimination per joint mode assignment and keep each mode's lost
// normalization constant in the separator, either as Mixture branch
// constants or, once no continuous separator remains, as a Modal evidence
// table over the modes; that constant is what lets the discrete posterior
// weigh how well each mode explained the eliminated variables. Discrete
// frontals are summed out of pure Modal tables. Mixed frontal sets are
// rejected with ErrMixedFrontals, and modes eliminated while continuous
// factors remain with ErrDiscreteBeforeContinuous, since the family has no
// discrete-given-continuous conditional.
//
// OrderingConstrainedLast keeps whole-graph elimination inside those rules
// by ordering every continuous variable before every mode, and
// EliminateMultifrontal builds its cliques behind a kind barrier so none
// mixes frontal kinds. Conditionals come out as a tagged union: Gaussian,
// discrete table, or MixtureConditional with the modes as extra parents.
// BayesNet.Optimize and BayesTree.Optimize decode modes by argmax first,
// then back-substitute the selected Gaussian branches.
//
// Incremental updates through the Bayes tree re-eliminate the detached top
// with an ordering computed over just those variables, unconstrained; a
// detached set mixing both kinds can fail with ErrMixedFrontals or
// ErrDiscreteBeforeContinuous, so keep incremental edits to hybrid trees
// within one kind at a time.
package hybrid
