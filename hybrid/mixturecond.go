package hybrid

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// MixtureConditional is a conditional density over continuous frontals whose
// coefficients switch on discrete modes: P(frontals | parents, modes) with
// one Gaussian branch per joint mode assignment. All branches share the same
// frontals and the same continuous parents; the mode keys join the parent
// set. Branch layout is canonical, the same as Mixture.
type MixtureConditional struct {
	modes       []discrete.DiscreteKey
	branches    []*gaussian.Conditional
	keys        []core.Key
	nf          int
	ncp         int
	negLogConst float64
}

// NewMixtureConditional builds a mode-switched conditional. Branches are
// laid out row-major in the order the modes are given, last given mode
// fastest, and must agree on frontals, parents and frontal dimension.
func NewMixtureConditional(modes []discrete.DiscreteKey, branches []*gaussian.Conditional) (*MixtureConditional, error) {
	sorted, size, err := sortedModes(modes)
	if err != nil {
		return nil, err
	}
	if len(branches) != size {
		return nil, fmt.Errorf("%w: %d branches for %d assignments", ErrBranchCount, len(branches), size)
	}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("%w: branch %d", ErrNilBranch, i)
		}
	}
	branches = permuteToCanonical(modes, sorted, branches)

	first := branches[0]
	negLogConst := first.NegLogConstant()
	for i, b := range branches[1:] {
		if !sameKeys(first.Keys(), b.Keys()) || b.NumFrontals() != first.NumFrontals() || b.FrontalDim() != first.FrontalDim() {
			return nil, fmt.Errorf("%w: branch %d", ErrBranchScope, i+1)
		}
		if b.NegLogConstant() < negLogConst {
			negLogConst = b.NegLogConstant()
		}
	}

	ckeys := first.Keys()
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

	return &MixtureConditional{
		modes:       sorted,
		branches:    branches,
		keys:        keys,
		nf:          first.NumFrontals(),
		ncp:         len(first.Parents()),
		negLogConst: negLogConst,
	}, nil
}

// Keys returns frontals, continuous parents, then mode keys.
func (mc *MixtureConditional) Keys() []core.Key { return mc.keys }

// NumFrontals returns the number of frontal keys.
func (mc *MixtureConditional) NumFrontals() int { return mc.nf }

// Frontals returns the frontal keys.
func (mc *MixtureConditional) Frontals() []core.Key { return mc.keys[:mc.nf] }

// Parents returns the continuous parents followed by the mode keys.
func (mc *MixtureConditional) Parents() []core.Key { return mc.keys[mc.nf:] }

// ContinuousParents returns the parents the Gaussian branches condition on.
func (mc *MixtureConditional) ContinuousParents() []core.Key {
	return mc.keys[mc.nf : mc.nf+mc.ncp]
}

// DiscreteKeys returns the mode keys ascending.
func (mc *MixtureConditional) DiscreteKeys() []discrete.DiscreteKey {
	out := make([]discrete.DiscreteKey, len(mc.modes))
	copy(out, mc.modes)

	return out
}

// NumBranches returns the number of joint mode assignments.
func (mc *MixtureConditional) NumBranches() int { return len(mc.branches) }

// Choose returns the Gaussian branch the assignment selects. Extra keys in
// modes are ignored.
func (mc *MixtureConditional) Choose(modes discrete.Values) (*gaussian.Conditional, error) {
	idx, err := modeIndex(mc.modes, modes)
	if err != nil {
		return nil, err
	}

	return mc.branches[idx], nil
}

// NegLogConstant returns the smallest branch normalization constant, so the
// per-branch corrections in Error are nonnegative.
func (mc *MixtureConditional) NegLogConstant() float64 { return mc.negLogConst }

// Error evaluates the selected branch's error plus that branch's
// normalization gap against the best-normalized branch. The identity
// -ln P(v) = Error(v) + NegLogConstant() holds for every assignment.
func (mc *MixtureConditional) Error(v Values) (float64, error) {
	idx, err := modeIndex(mc.modes, v.Discrete)
	if err != nil {
		return 0, err
	}
	b := mc.branches[idx]
	e, err := b.Error(v.Continuous)
	if err != nil {
		return 0, err
	}

	return e + b.NegLogConstant() - mc.negLogConst, nil
}

// LogProbability evaluates ln P(frontals | parents, modes) at v.
func (mc *MixtureConditional) LogProbability(v Values) (float64, error) {
	idx, err := modeIndex(mc.modes, v.Discrete)
	if err != nil {
		return 0, err
	}

	return mc.branches[idx].LogProbability(v.Continuous)
}

// sameKeys reports whether a and b hold the same keys in the same order.
func sameKeys(a, b []core.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
