package discrete

import "errors"

// Configuration errors reported by constructors and evaluators. Zero
// probability columns found during elimination are numerical degeneracy
// and surface as *core.IndeterminateError instead.
var (
	// ErrCardinality reports a nonpositive cardinality or a key whose
	// cardinality differs between two tables.
	ErrCardinality = errors.New("discrete: cardinality mismatch")

	// ErrTableSize reports a value slice that does not match the product
	// of the scope cardinalities.
	ErrTableSize = errors.New("discrete: table size mismatch")

	// ErrNegativeValue reports a negative potential entry.
	ErrNegativeValue = errors.New("discrete: negative table value")

	// ErrDuplicateKey reports a key that appears twice in one scope.
	ErrDuplicateKey = errors.New("discrete: duplicate key in scope")

	// ErrUnknownKey reports a key outside a table's scope.
	ErrUnknownKey = errors.New("discrete: key not in scope")

	// ErrMissingAssignment reports an evaluation lacking a required key.
	ErrMissingAssignment = errors.New("discrete: missing assignment for key")

	// ErrStateRange reports a state index at or above its cardinality.
	ErrStateRange = errors.New("discrete: state out of range")

	// ErrZeroTable reports an operation that needs mass on a table whose
	// entries sum to zero.
	ErrZeroTable = errors.New("discrete: table has no mass")

	// ErrNoFrontals reports an elimination call without frontal keys.
	ErrNoFrontals = errors.New("discrete: no frontal keys")
)
