package discrete

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
)

// EliminateSum eliminates the frontal keys by sum-product: the gathered
// tables are multiplied with running max scaling, the frontals are summed
// out into the separator table and each parent column is normalized into
// P(frontals | separator). A parent column without mass is reported as
// *core.IndeterminateError, as is a frontal no factor touches.
//
// EliminateSum satisfies core.Eliminate and is the Family default.
func EliminateSum(factors []*TableFactor, frontals []core.Key) (*Conditional, *TableFactor, error) {
	return eliminate(factors, frontals, (*TableFactor).Sum)
}

// EliminateMax eliminates the frontal keys by max-product: like
// EliminateSum but the frontals leave by maximization, so the separator
// carries max marginals and chaining ArgMax through the result decodes the
// most probable explanation.
//
// EliminateMax satisfies core.Eliminate and is the FamilyMax default.
func EliminateMax(factors []*TableFactor, frontals []core.Key) (*Conditional, *TableFactor, error) {
	return eliminate(factors, frontals, (*TableFactor).Max)
}

func eliminate(
	factors []*TableFactor,
	frontals []core.Key,
	reduce func(*TableFactor, ...core.Key) (*TableFactor, error),
) (*Conditional, *TableFactor, error) {
	if len(frontals) == 0 {
		return nil, nil, ErrNoFrontals
	}
	prod, err := ScaledProduct(factors...)
	if err != nil {
		return nil, nil, err
	}

	isFrontal := make(map[core.Key]bool, len(frontals))
	var missing []core.Key
	for _, k := range frontals {
		if isFrontal[k] {
			return nil, nil, fmt.Errorf("%w: frontal %s", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		isFrontal[k] = true
		if _, ok := prod.Card(k); !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, nil, core.NewIndeterminateError("unconstrained variable", missing...)
	}

	sep, err := reduce(prod, frontals...)
	if err != nil {
		return nil, nil, err
	}
	cond, err := newNormalized(frontals, prod, sep)
	if err != nil {
		return nil, nil, err
	}

	return cond, sep, nil
}
