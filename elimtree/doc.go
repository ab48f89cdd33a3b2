// Package elimtree builds elimination trees and runs sequential variable
// elimination over them, turning a factor graph into a Bayes net.
//
// The elimination tree has one node per ordered variable. Every factor
// attaches to the node of its earliest-ordered variable, and each node's
// parent is the earliest-ordered variable of its separator. Eliminating
// node by node in elimination order, passing every node's separator factor
// to its parent, performs exactly the classic sequential elimination
//
//	P(X) = P(x_0 | S_0) · P(x_1 | S_1) · ... · P(x_{n-1})
//
// with one conditional per variable.
//
// Construction walks each factor column once and splices subtree roots
// under the current node by following parent pointers, so building costs
// O(m·log n) for m factor entries. The tree is arena-backed: nodes live in
// a slice in elimination order, parent and child links are slice indices,
// and -1 means "no parent". Parents always follow their children in the
// arena, which makes a single forward sweep a valid postorder.
//
// Entry points:
//
//	Build                 construct the tree for a complete ordering
//	EliminateTree         run an eliminator over a built tree
//	EliminateSequential   index + build + eliminate in one call
//	Marginalize           eliminate everything except the kept variables
//
// The eliminator decides the family semantics (Gaussian, discrete, ...);
// this package only moves factors and conditionals around. Errors from the
// eliminator, including core.ErrIndeterminateSystem, pass through wrapped
// with the failing variable.
//
// Disconnected graphs yield a forest: several roots, one remaining
// separator factor per root. With a complete ordering those remaining
// factors have empty scope and carry normalization constants; Marginalize
// instead leaves the marginal factors on the kept variables.
package elimtree
