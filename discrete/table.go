package discrete

import (
	"fmt"
	"math"

	"github.com/katalvlaran/factree/core"
)

// TableFactor is a dense nonnegative potential over a sorted scope of
// discrete variables, stored row-major with the last key fastest.
// TableFactor values are immutable; every operation returns a new table.
//
// TableFactor implements core.Factor.
type TableFactor struct {
	keys  []core.Key
	cards []int
	table []float64
}

// NewTableFactor builds a table over scope from values laid out row-major
// in the order scope is given (last given key fastest). The scope is
// canonicalized to ascending key order internally. An empty scope with one
// value yields a constant factor.
func NewTableFactor(scope []DiscreteKey, values []float64) (*TableFactor, error) {
	size := 1
	for i, dk := range scope {
		if dk.Card < 1 {
			return nil, fmt.Errorf("%w: %s has cardinality %d",
				ErrCardinality, core.DefaultKeyFormatter(dk.Key), dk.Card)
		}
		for _, prev := range scope[:i] {
			if prev.Key == dk.Key {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(dk.Key))
			}
		}
		size *= dk.Card
	}
	if len(values) != size {
		return nil, fmt.Errorf("%w: %d values for %d cells", ErrTableSize, len(values), size)
	}
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: %g", ErrNegativeValue, v)
		}
	}

	sorted := SortDiscreteKeys(append([]DiscreteKey(nil), scope...))
	f := &TableFactor{
		keys:  make([]core.Key, len(sorted)),
		cards: make([]int, len(sorted)),
		table: make([]float64, size),
	}
	for i, dk := range sorted {
		f.keys[i] = dk.Key
		f.cards[i] = dk.Card
	}

	// Positions of the given keys inside the sorted scope.
	givenPos := make([]int, len(scope))
	for j, dk := range scope {
		givenPos[j] = f.pos(dk.Key)
	}
	states := make([]int, len(sorted))
	for ci := 0; ci < size; ci++ {
		f.decompose(ci, states)
		src := 0
		for j, dk := range scope {
			src = src*dk.Card + states[givenPos[j]]
		}
		f.table[ci] = values[src]
	}

	return f, nil
}

// newUniformTable builds the all-ones table over scope, the multiplicative
// identity used as the structural orphan stub.
func newUniformTable(scope []DiscreteKey) *TableFactor {
	size := 1
	for _, dk := range scope {
		size *= dk.Card
	}
	values := make([]float64, size)
	for i := range values {
		values[i] = 1
	}
	f, err := NewTableFactor(scope, values)
	if err != nil {
		panic(fmt.Sprintf("discrete: uniform table over invalid scope: %v", err))
	}

	return f
}

// Keys implements core.Factor: the scope in ascending order. Callers must
// not mutate the result.
func (f *TableFactor) Keys() []core.Key { return f.keys }

// DiscreteKeys returns the scope with cardinalities, ascending.
func (f *TableFactor) DiscreteKeys() []DiscreteKey {
	out := make([]DiscreteKey, len(f.keys))
	for i, k := range f.keys {
		out[i] = DiscreteKey{Key: k, Card: f.cards[i]}
	}

	return out
}

// Card returns the cardinality of k and whether k is in scope.
func (f *TableFactor) Card(k core.Key) (int, bool) {
	if i := f.pos(k); i >= 0 {
		return f.cards[i], true
	}

	return 0, false
}

// Size returns the number of table cells.
func (f *TableFactor) Size() int { return len(f.table) }

// Table returns a copy of the raw cells in canonical layout.
func (f *TableFactor) Table() []float64 {
	return append([]float64(nil), f.table...)
}

// Value looks up the potential at v. Every scope key must be assigned a
// state inside its cardinality.
func (f *TableFactor) Value(v Values) (float64, error) {
	idx := 0
	for i, k := range f.keys {
		s, ok := v[k]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingAssignment, core.DefaultKeyFormatter(k))
		}
		if s < 0 || s >= f.cards[i] {
			return 0, fmt.Errorf("%w: %s=%d of %d", ErrStateRange, core.DefaultKeyFormatter(k), s, f.cards[i])
		}
		idx = idx*f.cards[i] + s
	}

	return f.table[idx], nil
}

// Mul multiplies two tables over the union scope. Shared keys must agree
// on cardinality.
func (f *TableFactor) Mul(o *TableFactor) (*TableFactor, error) {
	union := append([]DiscreteKey(nil), f.DiscreteKeys()...)
	for _, dk := range o.DiscreteKeys() {
		if c, ok := f.Card(dk.Key); ok {
			if c != dk.Card {
				return nil, fmt.Errorf("%w: %s is %d-ary and %d-ary",
					ErrCardinality, core.DefaultKeyFormatter(dk.Key), c, dk.Card)
			}

			continue
		}
		union = append(union, dk)
	}
	SortDiscreteKeys(union)

	out := &TableFactor{
		keys:  make([]core.Key, len(union)),
		cards: make([]int, len(union)),
	}
	size := 1
	for i, dk := range union {
		out.keys[i] = dk.Key
		out.cards[i] = dk.Card
		size *= dk.Card
	}
	out.table = make([]float64, size)

	fPos := factorPositions(f, out)
	oPos := factorPositions(o, out)
	states := make([]int, len(union))
	for ci := 0; ci < size; ci++ {
		out.decompose(ci, states)
		out.table[ci] = f.table[composeIndex(f, fPos, states)] * o.table[composeIndex(o, oPos, states)]
	}

	return out, nil
}

// Sum reduces the given keys out by summation, the marginalization step of
// sum-product elimination.
func (f *TableFactor) Sum(over ...core.Key) (*TableFactor, error) {
	return f.reduce(over, func(acc, v float64) float64 { return acc + v })
}

// Max reduces the given keys out by maximization, the step of max-product
// elimination.
func (f *TableFactor) Max(over ...core.Key) (*TableFactor, error) {
	return f.reduce(over, math.Max)
}

// Normalize scales the table to sum to one. A table without mass cannot be
// normalized.
func (f *TableFactor) Normalize() (*TableFactor, error) {
	total := 0.0
	for _, v := range f.table {
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: scope %s", ErrZeroTable, core.FormatKeys(f.keys, nil))
	}

	out := f.clone()
	for i := range out.table {
		out.table[i] /= total
	}

	return out, nil
}

// Restrict fixes every scope key assigned in v and returns the table over
// the remaining keys. Keys of v outside the scope are ignored.
func (f *TableFactor) Restrict(v Values) (*TableFactor, error) {
	fixed := make([]int, len(f.keys)) // state per scope position, -1 for free
	free := make([]DiscreteKey, 0, len(f.keys))
	for i, k := range f.keys {
		s, ok := v[k]
		if !ok {
			fixed[i] = -1
			free = append(free, DiscreteKey{Key: k, Card: f.cards[i]})

			continue
		}
		if s < 0 || s >= f.cards[i] {
			return nil, fmt.Errorf("%w: %s=%d of %d", ErrStateRange, core.DefaultKeyFormatter(k), s, f.cards[i])
		}
		fixed[i] = s
	}

	out := &TableFactor{
		keys:  make([]core.Key, len(free)),
		cards: make([]int, len(free)),
	}
	size := 1
	for i, dk := range free {
		out.keys[i] = dk.Key
		out.cards[i] = dk.Card
		size *= dk.Card
	}
	out.table = make([]float64, size)

	freeStates := make([]int, len(free))
	for ci := 0; ci < size; ci++ {
		out.decompose(ci, freeStates)
		idx := 0
		fi := 0
		for i := range f.keys {
			s := fixed[i]
			if s == -1 {
				s = freeStates[fi]
				fi++
			}
			idx = idx*f.cards[i] + s
		}
		out.table[ci] = f.table[idx]
	}

	return out, nil
}

// ScaledProduct multiplies the tables, rescaling the running product by
// its maximum entry to keep long products away from floating-point
// underflow. The overall scale is not tracked; elimination renormalizes.
// An empty product is the constant table 1.
func ScaledProduct(factors ...*TableFactor) (*TableFactor, error) {
	prod := newUniformTable(nil)
	for _, f := range factors {
		if f == nil {
			return nil, core.ErrEmptySlot
		}
		next, err := prod.Mul(f)
		if err != nil {
			return nil, err
		}
		if m := next.maxValue(); m > 0 && m != 1 {
			next = next.clone()
			for i := range next.table {
				next.table[i] /= m
			}
		}
		prod = next
	}

	return prod, nil
}

// reduce folds the given keys out of the table cell-wise with op.
func (f *TableFactor) reduce(over []core.Key, op func(acc, v float64) float64) (*TableFactor, error) {
	dropping := make([]bool, len(f.keys))
	for i, k := range over {
		p := f.pos(k)
		if p < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, core.DefaultKeyFormatter(k))
		}
		if dropping[p] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(over[i]))
		}
		dropping[p] = true
	}

	out := &TableFactor{}
	keptPos := make([]int, 0, len(f.keys))
	size := 1
	for i := range f.keys {
		if dropping[i] {
			continue
		}
		out.keys = append(out.keys, f.keys[i])
		out.cards = append(out.cards, f.cards[i])
		keptPos = append(keptPos, i)
		size *= f.cards[i]
	}
	out.table = make([]float64, size)

	states := make([]int, len(f.keys))
	seen := make([]bool, size)
	for i, v := range f.table {
		f.decompose(i, states)
		ki := 0
		for j, p := range keptPos {
			ki = ki*out.cards[j] + states[p]
		}
		if !seen[ki] {
			out.table[ki] = v
			seen[ki] = true

			continue
		}
		out.table[ki] = op(out.table[ki], v)
	}

	return out, nil
}

// pos returns the scope position of k, or -1.
func (f *TableFactor) pos(k core.Key) int {
	for i, key := range f.keys {
		if key == k {
			return i
		}
	}

	return -1
}

// decompose writes the per-key states of cell idx into states.
func (f *TableFactor) decompose(idx int, states []int) {
	for i := len(f.keys) - 1; i >= 0; i-- {
		states[i] = idx % f.cards[i]
		idx /= f.cards[i]
	}
}

func (f *TableFactor) maxValue() float64 {
	m := 0.0
	for _, v := range f.table {
		if v > m {
			m = v
		}
	}

	return m
}

func (f *TableFactor) clone() *TableFactor {
	return &TableFactor{
		keys:  f.keys,
		cards: f.cards,
		table: append([]float64(nil), f.table...),
	}
}

// factorPositions maps each scope position of f to its position in the
// union table u.
func factorPositions(f, u *TableFactor) []int {
	out := make([]int, len(f.keys))
	for i, k := range f.keys {
		out[i] = u.pos(k)
	}

	return out
}

// composeIndex folds the union states down to f's cell index.
func composeIndex(f *TableFactor, posInUnion []int, unionStates []int) int {
	idx := 0
	for i := range f.keys {
		idx = idx*f.cards[i] + unionStates[posInUnion[i]]
	}

	return idx
}
