// SPDX-License-Identifier: MIT

package builder

import "errors"

// Sentinel errors returned by the constructors. Implementations wrap them
// with method context; branch with errors.Is.
var (
	// ErrTooFewVariables reports a size parameter below the constructor's
	// minimum (chain and Markov length, grid dimensions).
	ErrTooFewVariables = errors.New("builder: too few variables")

	// ErrBadCardinality reports a discrete cardinality below two.
	ErrBadCardinality = errors.New("builder: cardinality below two")
)
