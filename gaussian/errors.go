// SPDX-License-Identifier: MIT

package gaussian

import "errors"

// Configuration errors reported by constructors and evaluators. Numerical
// degeneracy during elimination is reported as *core.IndeterminateError
// instead, so callers can tell a misbuilt factor from a system that is
// merely under-constrained.
var (
	// ErrShape reports a matrix or vector whose dimensions do not match
	// the declared variable widths.
	ErrShape = errors.New("gaussian: shape mismatch")

	// ErrDuplicateKey reports a key that appears twice in one scope.
	ErrDuplicateKey = errors.New("gaussian: duplicate key in scope")

	// ErrDimMismatch reports a variable whose width differs between two
	// factors of the same graph.
	ErrDimMismatch = errors.New("gaussian: variable dimension mismatch")

	// ErrMissingValue reports an assignment that lacks a required key.
	ErrMissingValue = errors.New("gaussian: missing value for key")
)
