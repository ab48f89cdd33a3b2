package hybrid

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Mixture is a Gaussian factor that switches on discrete modes: one Jacobian
// branch per joint mode assignment, all sharing one continuous scope, each
// with an additive error constant. Its error at (x, m) is the selected
// branch's error at x plus that branch's constant, so the constants shape
// the relative weight the modes carry once the continuous variables are
// integrated out.
//
// Branches are stored densely over the sorted mode keys with the last key
// varying fastest, the same layout discrete tables use.
type Mixture struct {
	ckeys    []core.Key
	modes    []discrete.DiscreteKey
	branches []*gaussian.JacobianFactor
	consts   []float64
	keys     []core.Key
}

// NewMixture builds a mixture over the given mode keys. Branches are laid
// out row-major in the order the modes are given, last given mode fastest;
// the constructor re-sorts the scope ascending and permutes the table to
// match. A nil consts means all zeros, otherwise it must pair up with
// branches. Every branch must share the scope of the first: same keys, same
// order, same dimensions, and at least one continuous variable.
func NewMixture(modes []discrete.DiscreteKey, branches []*gaussian.JacobianFactor, consts []float64) (*Mixture, error) {
	sorted, size, err := sortedModes(modes)
	if err != nil {
		return nil, err
	}
	if len(branches) != size {
		return nil, fmt.Errorf("%w: %d branches for %d assignments", ErrBranchCount, len(branches), size)
	}
	if consts != nil && len(consts) != size {
		return nil, fmt.Errorf("%w: %d constants for %d assignments", ErrBranchCount, len(consts), size)
	}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("%w: branch %d", ErrNilBranch, i)
		}
	}

	branches = permuteToCanonical(modes, sorted, branches)
	if consts == nil {
		consts = make([]float64, size)
	} else {
		consts = permuteToCanonical(modes, sorted, consts)
	}

	ckeys := branches[0].Keys()
	if len(ckeys) == 0 {
		return nil, fmt.Errorf("%w: mixture branches need continuous variables", ErrNotContinuous)
	}
	dims := branches[0].Dims()
	for i, b := range branches[1:] {
		if !sameScope(ckeys, dims, b) {
			return nil, fmt.Errorf("%w: branch %d", ErrBranchScope, i+1)
		}
	}

	keys := make([]core.Key, 0, len(ckeys)+len(sorted))
	keys = append(keys, ckeys...)
	for _, dk := range sorted {
		for _, k := range ckeys {
			if k == dk.Key {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(k))
			}
		}
		keys = append(keys, dk.Key)
	}

	return &Mixture{ckeys: ckeys, modes: sorted, branches: branches, consts: consts, keys: keys}, nil
}

// Keys returns the continuous scope followed by the mode keys.
func (f *Mixture) Keys() []core.Key { return f.keys }

// ContinuousKeys returns the shared branch scope.
func (f *Mixture) ContinuousKeys() []core.Key { return f.ckeys }

// DiscreteKeys returns the mode keys ascending.
func (f *Mixture) DiscreteKeys() []discrete.DiscreteKey {
	out := make([]discrete.DiscreteKey, len(f.modes))
	copy(out, f.modes)

	return out
}

// NumBranches returns the number of joint mode assignments.
func (f *Mixture) NumBranches() int { return len(f.branches) }

// Branch returns the Jacobian branch and error constant the assignment
// selects. Extra keys in modes are ignored.
func (f *Mixture) Branch(modes discrete.Values) (*gaussian.JacobianFactor, float64, error) {
	idx, err := modeIndex(f.modes, modes)
	if err != nil {
		return nil, 0, err
	}

	return f.branches[idx], f.consts[idx], nil
}

// Error evaluates the selected branch at v.Continuous and adds its constant.
func (f *Mixture) Error(v Values) (float64, error) {
	b, c, err := f.Branch(v.Discrete)
	if err != nil {
		return 0, err
	}
	e, err := b.Error(v.Continuous)
	if err != nil {
		return 0, err
	}

	return e + c, nil
}

// sameScope reports whether b's scope matches keys and dims exactly.
func sameScope(keys []core.Key, dims []int, b *gaussian.JacobianFactor) bool {
	bk := b.Keys()
	if len(bk) != len(keys) {
		return false
	}
	bd := b.Dims()
	for i := range keys {
		if bk[i] != keys[i] || bd[i] != dims[i] {
			return false
		}
	}

	return true
}

// sortedModes validates a mode scope (positive cardinalities, no duplicate
// keys) and returns an ascending copy plus the joint assignment count.
func sortedModes(modes []discrete.DiscreteKey) ([]discrete.DiscreteKey, int, error) {
	if len(modes) == 0 {
		return nil, 0, ErrNoModes
	}
	sorted := make([]discrete.DiscreteKey, len(modes))
	copy(sorted, modes)
	discrete.SortDiscreteKeys(sorted)

	size := 1
	for i, dk := range sorted {
		if dk.Card < 1 {
			return nil, 0, fmt.Errorf("%w: %s has cardinality %d", ErrCardinality, core.DefaultKeyFormatter(dk.Key), dk.Card)
		}
		if i > 0 && sorted[i-1].Key == dk.Key {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(dk.Key))
		}
		size *= dk.Card
	}

	return sorted, size, nil
}

// modeIndex returns the canonical table index of the assignment over modes,
// which must be sorted ascending. Keys outside modes are ignored.
func modeIndex(modes []discrete.DiscreteKey, v discrete.Values) (int, error) {
	idx := 0
	for _, dk := range modes {
		s, ok := v[dk.Key]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingMode, core.DefaultKeyFormatter(dk.Key))
		}
		if s < 0 || s >= dk.Card {
			return 0, fmt.Errorf("%w: %s=%d of %d", ErrStateRange, core.DefaultKeyFormatter(dk.Key), s, dk.Card)
		}
		idx = idx*dk.Card + s
	}

	return idx, nil
}

// modeAssignment expands canonical table index idx into an assignment over
// modes, which must be sorted ascending.
func modeAssignment(modes []discrete.DiscreteKey, idx int) discrete.Values {
	v := make(discrete.Values, len(modes))
	for i := len(modes) - 1; i >= 0; i-- {
		v[modes[i].Key] = idx % modes[i].Card
		idx /= modes[i].Card
	}

	return v
}

// permuteToCanonical reorders a dense table laid out row-major over the
// given mode order into the canonical layout over the sorted modes.
func permuteToCanonical[T any](given, sorted []discrete.DiscreteKey, table []T) []T {
	pos := make([]int, len(given))
	for j, g := range given {
		for i, s := range sorted {
			if s.Key == g.Key {
				pos[j] = i
			}
		}
	}

	out := make([]T, len(table))
	states := make([]int, len(sorted))
	for ci := range out {
		rest := ci
		for i := len(sorted) - 1; i >= 0; i-- {
			states[i] = rest % sorted[i].Card
			rest /= sorted[i].Card
		}
		src := 0
		for j, g := range given {
			src = src*g.Card + states[pos[j]]
		}
		out[ci] = table[src]
	}

	return out
}
