// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
)

// VectorValues assigns a dense vector to each variable key. It is the
// input of factor error evaluation and the output of Optimize and Sample.
//
// The zero value is not usable; construct with NewVectorValues or a map
// literal. VectorValues is not safe for concurrent mutation.
type VectorValues map[core.Key]*mat.VecDense

// NewVectorValues returns an empty assignment.
func NewVectorValues() VectorValues {
	return make(VectorValues)
}

// Insert stores vals under k. It returns ErrDuplicateKey when k is already
// assigned and ErrShape when vals is empty.
func (v VectorValues) Insert(k core.Key, vals ...float64) error {
	if _, ok := v[k]; ok {
		return fmt.Errorf("%w: %s already assigned", ErrDuplicateKey, core.DefaultKeyFormatter(k))
	}
	if len(vals) == 0 {
		return fmt.Errorf("%w: empty vector for %s", ErrShape, core.DefaultKeyFormatter(k))
	}
	v[k] = mat.NewVecDense(len(vals), append([]float64(nil), vals...))

	return nil
}

// At returns the vector assigned to k and whether one exists. The returned
// vector is the stored one; callers must not mutate it.
func (v VectorValues) At(k core.Key) (*mat.VecDense, bool) {
	x, ok := v[k]

	return x, ok
}

// Dim returns the width assigned to k and whether k is assigned.
func (v VectorValues) Dim(k core.Key) (int, bool) {
	x, ok := v[k]
	if !ok {
		return 0, false
	}

	return x.Len(), true
}

// Keys returns the assigned keys in ascending order.
func (v VectorValues) Keys() []core.Key {
	keys := make([]core.Key, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	core.SortKeys(keys)

	return keys
}

// TotalDim returns the summed width of all assigned vectors.
func (v VectorValues) TotalDim() int {
	total := 0
	for _, x := range v {
		total += x.Len()
	}

	return total
}

// Copy returns a deep copy of the assignment.
func (v VectorValues) Copy() VectorValues {
	out := make(VectorValues, len(v))
	for k, x := range v {
		out[k] = mat.VecDenseCopyOf(x)
	}

	return out
}

// Equal reports whether o assigns the same keys with entries within tol of
// v's. Differing key sets or widths compare unequal.
func (v VectorValues) Equal(o VectorValues, tol float64) bool {
	if len(v) != len(o) {
		return false
	}
	for k, x := range v {
		y, ok := o[k]
		if !ok || y.Len() != x.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if math.Abs(x.AtVec(i)-y.AtVec(i)) > tol {
				return false
			}
		}
	}

	return true
}

// Add returns v + o entry-wise. Both assignments must cover the same keys
// with the same widths; otherwise ErrMissingValue or ErrShape is returned.
func (v VectorValues) Add(o VectorValues) (VectorValues, error) {
	return v.combine(o, 1)
}

// Sub returns v − o entry-wise under the same key and width requirements
// as Add.
func (v VectorValues) Sub(o VectorValues) (VectorValues, error) {
	return v.combine(o, -1)
}

// combine merges two assignments as v + scale·o.
func (v VectorValues) combine(o VectorValues, scale float64) (VectorValues, error) {
	if len(v) != len(o) {
		return nil, fmt.Errorf("%w: %d keys versus %d", ErrMissingValue, len(v), len(o))
	}
	out := make(VectorValues, len(v))
	for k, x := range v {
		y, ok := o[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, core.DefaultKeyFormatter(k))
		}
		if y.Len() != x.Len() {
			return nil, fmt.Errorf("%w: %s has width %d versus %d",
				ErrShape, core.DefaultKeyFormatter(k), x.Len(), y.Len())
		}
		z := mat.NewVecDense(x.Len(), nil)
		z.AddScaledVec(x, scale, y)
		out[k] = z
	}

	return out, nil
}

// String renders the assignment with keys in ascending order, one entry
// per line.
func (v VectorValues) String() string {
	var b strings.Builder
	for _, k := range v.Keys() {
		x := v[k]
		b.WriteString(core.DefaultKeyFormatter(k))
		b.WriteString(": [")
		for i := 0; i < x.Len(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(x.AtVec(i), 'g', -1, 64))
		}
		b.WriteString("]\n")
	}

	return b.String()
}
