package hybrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Eliminate integrates continuous frontals or sums discrete frontals out of
// the product of the given factors. The frontal set must stay within one
// kind per call (ErrMixedFrontals otherwise), and discrete frontals are only
// legal once every gathered factor is a Modal table
// (ErrDiscreteBeforeContinuous otherwise); orderings from
// OrderingConstrainedLast satisfy both along the whole elimination.
//
// Continuous frontals run a QR elimination per joint mode assignment. Each
// mode's lost normalization constant is carried into the separator, so the
// mode posterior downstream sees exactly how well that mode's branch
// explained the frontals. With continuous variables left in the separator
// the result is a Mixture; with none it collapses to a Modal evidence table
// over the modes; with no modes at all it is the plain Gaussian elimination.
func Eliminate(factors []Factor, frontals []core.Key) (*Conditional, Factor, error) {
	if len(frontals) == 0 {
		return nil, nil, ErrNoFrontals
	}
	cont, modes, err := scanKinds(factors)
	if err != nil {
		return nil, nil, err
	}

	var nCont, nDisc int
	var missing []core.Key
	disc := make(map[core.Key]bool, len(modes))
	for _, dk := range modes {
		disc[dk.Key] = true
	}
	for _, k := range frontals {
		switch {
		case cont[k]:
			nCont++
		case disc[k]:
			nDisc++
		default:
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, nil, core.NewIndeterminateError("unconstrained variable", missing...)
	}
	if nCont > 0 && nDisc > 0 {
		return nil, nil, fmt.Errorf("%w: [%s]", ErrMixedFrontals, core.FormatKeys(frontals, nil))
	}
	if nDisc > 0 {
		return eliminateDiscrete(factors, frontals)
	}

	return eliminateContinuous(factors, frontals, modes)
}

// scanKinds splits the variables of the gathered factors by kind: a set of
// continuous keys and the sorted mode keys with cardinalities.
func scanKinds(factors []Factor) (map[core.Key]bool, []discrete.DiscreteKey, error) {
	cont := make(map[core.Key]bool)
	cards := make(map[core.Key]int)
	for _, f := range factors {
		if f == nil {
			return nil, nil, core.ErrEmptySlot
		}
		for _, k := range f.ContinuousKeys() {
			cont[k] = true
		}
		for _, dk := range f.DiscreteKeys() {
			if c, ok := cards[dk.Key]; ok {
				if c != dk.Card {
					return nil, nil, fmt.Errorf("%w: %s is %d-ary and %d-ary",
						ErrCardinality, core.DefaultKeyFormatter(dk.Key), c, dk.Card)
				}
				continue
			}
			cards[dk.Key] = dk.Card
		}
	}

	modes := make([]discrete.DiscreteKey, 0, len(cards))
	for k, c := range cards {
		if cont[k] {
			return nil, nil, fmt.Errorf("%w: %s", ErrKindMismatch, core.DefaultKeyFormatter(k))
		}
		modes = append(modes, discrete.DiscreteKey{Key: k, Card: c})
	}
	discrete.SortDiscreteKeys(modes)

	return cont, modes, nil
}

func eliminateDiscrete(factors []Factor, frontals []core.Key) (*Conditional, Factor, error) {
	tables := make([]*discrete.TableFactor, 0, len(factors))
	for _, f := range factors {
		m, ok := f.(Modal)
		if !ok {
			return nil, nil, fmt.Errorf("%w: factor over [%s]",
				ErrDiscreteBeforeContinuous, core.FormatKeys(f.Keys(), nil))
		}
		tables = append(tables, m.TableFactor)
	}
	cond, sep, err := discrete.EliminateSum(tables, frontals)
	if err != nil {
		return nil, nil, err
	}

	return FromDiscrete(cond), Modal{sep}, nil
}

func eliminateContinuous(factors []Factor, frontals []core.Key, modes []discrete.DiscreteKey) (*Conditional, Factor, error) {
	if len(modes) == 0 {
		return eliminatePure(factors, frontals)
	}

	size := 1
	for _, dk := range modes {
		size *= dk.Card
	}
	conds := make([]*gaussian.Conditional, size)
	seps := make([]*gaussian.JacobianFactor, size)
	consts := make([]float64, size)
	for ci := 0; ci < size; ci++ {
		assignment := modeAssignment(modes, ci)
		jfs := make([]*gaussian.JacobianFactor, 0, len(factors))
		shift := 0.0
		for _, f := range factors {
			switch t := f.(type) {
			case Continuous:
				jfs = append(jfs, t.JacobianFactor)
			case Modal:
				p, err := t.TableFactor.Value(assignment)
				if err != nil {
					return nil, nil, err
				}
				// A zero cell makes this mode impossible: +Inf.
				shift -= math.Log(p)
			case *Mixture:
				b, c, err := t.Branch(assignment)
				if err != nil {
					return nil, nil, err
				}
				jfs = append(jfs, b)
				shift += c
			default:
				return nil, nil, fmt.Errorf("%w: %T", ErrUnknownFactorType, f)
			}
		}

		cond, sep, err := gaussian.EliminateQR(jfs, frontals)
		if err != nil {
			var ie *core.IndeterminateError
			if errors.As(err, &ie) {
				return nil, nil, core.NewIndeterminateError(
					fmt.Sprintf("%s (mode %s)", ie.Reason, assignment), ie.Keys...)
			}

			return nil, nil, fmt.Errorf("hybrid: mode %s: %w", assignment, err)
		}
		conds[ci] = cond
		seps[ci] = sep
		consts[ci] = shift - cond.NegLogConstant()
	}

	mixCond, err := NewMixtureConditional(modes, conds)
	if err != nil {
		panic(fmt.Sprintf("hybrid: mode-wise elimination produced mismatched branches: %v", err))
	}

	if len(conds[0].Parents()) == 0 {
		return FromMixture(mixCond), evidenceTable(modes, seps, consts), nil
	}

	// Shift the branch constants by their minimum; a shared offset is a
	// global scale and the small exponents keep later exp calls tame.
	minC := math.Inf(1)
	for _, c := range consts {
		if c < minC {
			minC = c
		}
	}
	if !math.IsInf(minC, 1) {
		for ci := range consts {
			consts[ci] -= minC
		}
	}
	mixSep, err := NewMixture(modes, seps, consts)
	if err != nil {
		panic(fmt.Sprintf("hybrid: mode-wise elimination produced mismatched separators: %v", err))
	}

	return FromMixture(mixCond), mixSep, nil
}

// eliminatePure handles the mode-free gather: plain Gaussian elimination.
func eliminatePure(factors []Factor, frontals []core.Key) (*Conditional, Factor, error) {
	jfs := make([]*gaussian.JacobianFactor, 0, len(factors))
	for _, f := range factors {
		switch t := f.(type) {
		case Continuous:
			jfs = append(jfs, t.JacobianFactor)
		case Modal:
			// No modes were scanned, so this table has an empty scope: a
			// constant scale with nothing to eliminate.
			continue
		default:
			return nil, nil, fmt.Errorf("%w: %T", ErrUnknownFactorType, f)
		}
	}
	cond, sep, err := gaussian.EliminateQR(jfs, frontals)
	if err != nil {
		return nil, nil, err
	}

	return FromGaussian(cond), Continuous{sep}, nil
}

// evidenceTable folds fully-eliminated per-mode leftovers into a discrete
// table: each cell gets exp of minus that mode's total residual, shifted by
// the best mode so the largest cell is one.
func evidenceTable(modes []discrete.DiscreteKey, seps []*gaussian.JacobianFactor, consts []float64) Modal {
	total := make([]float64, len(seps))
	minE := math.Inf(1)
	for ci, sep := range seps {
		e, err := sep.Error(nil)
		if err != nil {
			panic(fmt.Sprintf("hybrid: residual of empty-scope separator: %v", err))
		}
		total[ci] = e + consts[ci]
		if total[ci] < minE {
			minE = total[ci]
		}
	}

	vals := make([]float64, len(total))
	for ci, e := range total {
		if math.IsInf(e, 1) {
			continue
		}
		vals[ci] = math.Exp(minE - e)
	}
	tf, err := discrete.NewTableFactor(modes, vals)
	if err != nil {
		panic(fmt.Sprintf("hybrid: assemble evidence table: %v", err))
	}

	return Modal{tf}
}
