package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the module. Engines and families wrap these
// with fmt.Errorf("...: %w", ...) so errors.Is keeps working through layers.
var (
	// ErrNilGraph signals a nil *FactorGraph passed where a graph is required.
	ErrNilGraph = errors.New("core: factor graph is nil")

	// ErrNilIndex signals a nil *VariableIndex.
	ErrNilIndex = errors.New("core: variable index is nil")

	// ErrEmptySlot signals an operation that needs the factor at a position
	// which has been removed from its graph.
	ErrEmptySlot = errors.New("core: factor slot is empty")

	// ErrIndeterminateSystem is the numerical-degeneracy kind: elimination
	// could not determine the frontal variables (rank-deficient linear
	// system, all-zero discrete column, degenerate mixture branch).
	// Returned errors of this kind are *IndeterminateError values.
	ErrIndeterminateSystem = errors.New("core: indeterminate system")
)

// Factor is the minimal factor contract: a deterministic, duplicate-free
// variable scope. Families add evaluation on top of it.
type Factor interface {
	// Keys lists the variables this factor involves. The order is fixed per
	// factor instance and contains no duplicates. Callers must not mutate
	// the returned slice.
	Keys() []Key
}

// Conditional is a factor whose scope splits into frontal variables (the
// ones it describes) followed by parent variables (the ones it conditions
// on): Keys() == append(Frontals(), Parents()...).
type Conditional interface {
	Factor

	// NumFrontals reports how many leading keys are frontal.
	NumFrontals() int

	// Frontals returns the frontal keys in elimination order.
	Frontals() []Key

	// Parents returns the conditioning keys.
	Parents() []Key
}

// Eliminate is the dense per-family elimination callback. It consumes the
// given factors, which jointly involve frontals ∪ separator, and returns a
// conditional on the frontal keys plus a new factor on the separator. The
// separator factor is never nil-like: when the separator is empty it is an
// empty-scope factor carrying whatever constant the family tracks.
//
// Implementations must not retain or mutate the input slice, must be
// deterministic, and must report rank/degeneracy failures as
// *IndeterminateError (errors.Is(err, ErrIndeterminateSystem)).
type Eliminate[F Factor, C Conditional] func(factors []F, frontals []Key) (C, F, error)

// Family bundles the per-family capabilities the tree engines need beyond
// plain elimination. gaussian/, discrete/ and hybrid/ each export ready
// instances.
type Family[F Factor, C Conditional] struct {
	// Eliminate produces (conditional, separator factor) for a frontal set.
	Eliminate Eliminate[F, C]

	// ToFactor reinterprets a conditional as a factor over its full scope,
	// used when Bayes-tree queries and removeTop turn conditionals back
	// into factor-graph material.
	ToFactor func(C) F

	// OrphanStub builds a structural no-op factor over the parents of a
	// detached clique's conditional. Re-eliminating after removeTop feeds
	// these stubs in so every orphan separator lands inside one clique,
	// which re-attachment relies on.
	OrphanStub func(C) F
}

// IndeterminateError reports numerical degeneracy while eliminating a set of
// frontal keys. It unwraps to ErrIndeterminateSystem.
type IndeterminateError struct {
	// Keys are the frontal variables that could not be determined.
	Keys []Key

	// Reason is a short family-specific explanation ("zero pivot", ...).
	Reason string
}

// NewIndeterminateError builds an IndeterminateError over a copy of keys.
func NewIndeterminateError(reason string, keys ...Key) *IndeterminateError {
	cp := make([]Key, len(keys))
	copy(cp, keys)
	return &IndeterminateError{Keys: cp, Reason: reason}
}

// Error implements the error interface.
func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("%v: %s (keys %s)",
		ErrIndeterminateSystem, e.Reason, FormatKeys(e.Keys, nil))
}

// Unwrap lets errors.Is match ErrIndeterminateSystem.
func (e *IndeterminateError) Unwrap() error { return ErrIndeterminateSystem }
