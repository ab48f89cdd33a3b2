// Package ordering - shared types, algorithm selector and sentinel errors.
package ordering

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/factree/core"
)

// Sentinel errors for ordering construction and validation.
// Wrap with fmt.Errorf("...: %w", ...) so errors.Is keeps working through layers.
var (
	// ErrUnknownAlgorithm indicates an Algorithm value Compute does not recognize.
	ErrUnknownAlgorithm = errors.New("ordering: unknown algorithm")

	// ErrDuplicateKey indicates a custom ordering that lists some variable twice.
	ErrDuplicateKey = errors.New("ordering: duplicate key")

	// ErrIncompleteOrdering indicates a custom ordering that misses indexed variables.
	ErrIncompleteOrdering = errors.New("ordering: ordering does not cover all variables")

	// ErrUnknownKey indicates a custom ordering that references a variable
	// absent from the variable index.
	ErrUnknownKey = errors.New("ordering: key not present in variable index")
)

// Algorithm selects one of the built-in ordering strategies.
type Algorithm int

const (
	// MinFillOrder picks, at every step, the variable whose elimination adds
	// the fewest fill edges; ties break on the smaller key.
	MinFillOrder Algorithm = iota
	// NestedDissectionOrder recursively bisects the adjacency graph along
	// BFS level separators, ordering interiors before separators.
	NestedDissectionOrder
	// NaturalOrder keeps variables in the order they first entered the index.
	NaturalOrder
)

// String renders the algorithm name for logs and error messages.
func (a Algorithm) String() string {
	switch a {
	case MinFillOrder:
		return "MinFill"
	case NestedDissectionOrder:
		return "NestedDissection"
	case NaturalOrder:
		return "Natural"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Ordering is a total elimination order over the variables of a factor
// graph: position 0 is eliminated first, the last position ends up in the
// root of the Bayes tree.
type Ordering []core.Key

// Contains reports whether key k appears in the ordering.
//
// Complexity: O(n). Use Positions for repeated lookups.
func (o Ordering) Contains(k core.Key) bool {
	for _, key := range o {
		if key == k {
			return true
		}
	}

	return false
}

// Positions returns the inverse map key → elimination position.
//
// Complexity: O(n) time and space.
func (o Ordering) Positions() map[core.Key]int {
	pos := make(map[core.Key]int, len(o))
	for i, k := range o {
		pos[k] = i
	}

	return pos
}

// String renders the ordering as "[x0 x1 l2]" using the default key formatter.
func (o Ordering) String() string {
	return "[" + core.FormatKeys(o, core.DefaultKeyFormatter) + "]"
}

// Compute routes to the requested built-in strategy.
//
// Contracts:
//   - vi must be non-nil (core.ErrNilIndex otherwise).
//   - algo must be one of the Algorithm constants (ErrUnknownAlgorithm otherwise).
//
// The returned ordering covers every variable of vi exactly once and is
// deterministic for a given index.
func Compute(vi *core.VariableIndex, algo Algorithm) (Ordering, error) {
	if vi == nil {
		return nil, core.ErrNilIndex
	}

	// Route by strategy; each branch owns its own complexity profile.
	switch algo {
	case MinFillOrder:
		return MinFill(vi)
	case NestedDissectionOrder:
		return NestedDissection(vi)
	case NaturalOrder:
		return Natural(vi)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algo)
	}
}

// Natural returns the variables in the order they first appeared in the
// index, i.e. first factor first, scanning each factor's keys left to right.
//
// Complexity: O(V).
func Natural(vi *core.VariableIndex) (Ordering, error) {
	if vi == nil {
		return nil, core.ErrNilIndex
	}

	return Ordering(vi.Keys()), nil
}

// FromKeys validates a caller-provided elimination order against the index
// and returns it as an Ordering.
//
// Contracts:
//   - every key must be indexed (ErrUnknownKey otherwise),
//   - no key may repeat (ErrDuplicateKey otherwise),
//   - every indexed variable must appear (ErrIncompleteOrdering otherwise).
//
// The input slice is copied; the caller keeps ownership of keys.
func FromKeys(vi *core.VariableIndex, keys []core.Key) (Ordering, error) {
	if vi == nil {
		return nil, core.ErrNilIndex
	}

	seen := make(map[core.Key]struct{}, len(keys))
	for _, k := range keys {
		if !vi.Has(k) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, core.DefaultKeyFormatter(k))
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		seen[k] = struct{}{}
	}

	// No duplicates and no unknowns, so a length mismatch means coverage gaps.
	if len(keys) != vi.Len() {
		return nil, fmt.Errorf("%w: got %d of %d", ErrIncompleteOrdering, len(keys), vi.Len())
	}

	out := make(Ordering, len(keys))
	copy(out, keys)

	return out, nil
}
