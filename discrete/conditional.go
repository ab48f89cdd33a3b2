package discrete

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/factree/core"
)

// Conditional is a discrete density P(frontals | parents) stored as a
// table over the joint scope. Sum-product elimination normalizes every
// parent column to total mass one; max-product elimination normalizes it
// to peak at one.
//
// Conditional implements core.Conditional.
type Conditional struct {
	keys  []core.Key // frontals in elimination order, then parents ascending
	nf    int        // leading keys that are frontal
	table *TableFactor
}

// NewConditional builds P(frontals | rest) from the joint table by
// summing the frontals out and dividing each parent column by its mass.
// A parent assignment without mass leaves the frontals undetermined and
// is reported as *core.IndeterminateError.
func NewConditional(frontals []core.Key, joint *TableFactor) (*Conditional, error) {
	sep, err := joint.Sum(frontals...)
	if err != nil {
		return nil, err
	}

	return newNormalized(frontals, joint, sep)
}

// newNormalized divides joint by the reduced table sep, broadcast over the
// parent columns. Both eliminators land here, with sep the sum marginal or
// the max marginal.
func newNormalized(frontals []core.Key, joint, sep *TableFactor) (*Conditional, error) {
	for _, v := range sep.table {
		if v == 0 {
			return nil, core.NewIndeterminateError("zero probability column", frontals...)
		}
	}

	table := joint.clone()
	sepPos := factorPositions(sep, joint)
	states := make([]int, len(joint.keys))
	for i := range table.table {
		joint.decompose(i, states)
		table.table[i] /= sep.table[composeIndex(sep, sepPos, states)]
	}

	c := &Conditional{
		keys:  append([]core.Key(nil), frontals...),
		nf:    len(frontals),
		table: table,
	}
	c.keys = append(c.keys, sep.keys...)

	return c, nil
}

// Keys implements core.Factor: frontal keys followed by parent keys.
func (c *Conditional) Keys() []core.Key { return c.keys }

// NumFrontals implements core.Conditional.
func (c *Conditional) NumFrontals() int { return c.nf }

// Frontals implements core.Conditional.
func (c *Conditional) Frontals() []core.Key { return c.keys[:c.nf] }

// Parents implements core.Conditional.
func (c *Conditional) Parents() []core.Key { return c.keys[c.nf:] }

// Card returns the cardinality of k and whether k is in scope.
func (c *Conditional) Card(k core.Key) (int, bool) { return c.table.Card(k) }

// Value evaluates P(frontals | parents) at v. Every scope key must be
// assigned.
func (c *Conditional) Value(v Values) (float64, error) {
	return c.table.Value(v)
}

// LogProbability evaluates ln P(frontals | parents) at v. Zero-probability
// assignments yield -Inf.
func (c *Conditional) LogProbability(v Values) (float64, error) {
	p, err := c.Value(v)
	if err != nil {
		return 0, err
	}

	return math.Log(p), nil
}

// Choose fixes the parent assignment and returns the table over the
// frontals. parents must assign every parent key; extra keys are ignored.
func (c *Conditional) Choose(parents Values) (*TableFactor, error) {
	given := make(Values, c.nf)
	for _, k := range c.keys[c.nf:] {
		s, ok := parents[k]
		if !ok {
			return nil, fmt.Errorf("%w: parent %s", ErrMissingAssignment, core.DefaultKeyFormatter(k))
		}
		given[k] = s
	}

	return c.table.Restrict(given)
}

// ArgMax returns the most probable frontal assignment given the parents.
// Ties resolve to the lowest cell index, so results are deterministic.
func (c *Conditional) ArgMax(parents Values) (Values, error) {
	chosen, err := c.Choose(parents)
	if err != nil {
		return nil, err
	}
	best := 0
	for i, v := range chosen.table {
		if v > chosen.table[best] {
			best = i
		}
	}

	return chosen.cellValues(best), nil
}

// SampleWithRNG draws one frontal assignment given the parents,
// proportional to the chosen column. rng must not be nil.
func (c *Conditional) SampleWithRNG(parents Values, rng *rand.Rand) (Values, error) {
	if rng == nil {
		panic("discrete: SampleWithRNG requires a non-nil rng")
	}
	chosen, err := c.Choose(parents)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, v := range chosen.table {
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: scope %s", ErrZeroTable, core.FormatKeys(chosen.keys, nil))
	}

	u := rng.Float64() * total
	for i, v := range chosen.table {
		u -= v
		if u < 0 {
			return chosen.cellValues(i), nil
		}
	}

	// Rounding pushed u past the last positive cell.
	return chosen.cellValues(len(chosen.table) - 1), nil
}

// AsTable reinterprets the conditional as a plain table factor over its
// full scope. The tree engines use this to turn conditionals back into
// factor-graph material.
func (c *Conditional) AsTable() *TableFactor { return c.table }

// cellValues expands cell idx into a per-key assignment.
func (f *TableFactor) cellValues(idx int) Values {
	states := make([]int, len(f.keys))
	f.decompose(idx, states)
	out := make(Values, len(f.keys))
	for i, k := range f.keys {
		out[k] = states[i]
	}

	return out
}
