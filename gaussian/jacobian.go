// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
)

// Term is one variable block of a Jacobian factor: the key and its columns
// of the coefficient matrix. All terms of one factor share the row count.
type Term struct {
	Key core.Key
	A   *mat.Dense
}

// JacobianFactor is a whitened linear measurement ½‖Σ A_i·x_i − b‖² stored
// as one augmented dense block [A₁ … A_n | b]. The scope is duplicate-free
// and keeps construction order. A factor may have zero rows, in which case
// it constrains nothing and only pins its keys into a scope.
//
// JacobianFactor implements core.Factor.
type JacobianFactor struct {
	keys []core.Key
	dims []int
	ab   *mat.Dense // rows × (total width + 1); nil when the factor has no rows
}

// NewJacobianFactor builds a factor from the right-hand side b and one
// term per variable. Every term must carry len(b) rows and at least one
// column; keys must not repeat. A call with no terms yields an empty-scope
// constant factor.
func NewJacobianFactor(b []float64, terms ...Term) (*JacobianFactor, error) {
	rows := len(b)
	if rows == 0 {
		return nil, fmt.Errorf("%w: factor needs at least one row", ErrShape)
	}

	f := &JacobianFactor{
		keys: make([]core.Key, 0, len(terms)),
		dims: make([]int, 0, len(terms)),
	}
	total := 0
	for _, term := range terms {
		if term.A == nil {
			return nil, fmt.Errorf("%w: nil block for %s", ErrShape, core.DefaultKeyFormatter(term.Key))
		}
		r, c := term.A.Dims()
		if r != rows || c < 1 {
			return nil, fmt.Errorf("%w: block for %s is %dx%d, want %d rows",
				ErrShape, core.DefaultKeyFormatter(term.Key), r, c, rows)
		}
		for _, k := range f.keys {
			if k == term.Key {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(term.Key))
			}
		}
		f.keys = append(f.keys, term.Key)
		f.dims = append(f.dims, c)
		total += c
	}

	f.ab = mat.NewDense(rows, total+1, nil)
	off := 0
	for i, term := range terms {
		f.ab.Slice(0, rows, off, off+f.dims[i]).(*mat.Dense).Copy(term.A)
		off += f.dims[i]
	}
	for i, v := range b {
		f.ab.Set(i, total, v)
	}

	return f, nil
}

// newZeroRowFactor returns a rowless factor over the given scope. It
// carries no information; tree engines use it to keep detached subtree
// scopes visible during re-elimination.
func newZeroRowFactor(keys []core.Key, dims []int) *JacobianFactor {
	return &JacobianFactor{
		keys: append([]core.Key(nil), keys...),
		dims: append([]int(nil), dims...),
	}
}

// Keys implements core.Factor. Callers must not mutate the result.
func (f *JacobianFactor) Keys() []core.Key { return f.keys }

// Rows returns the number of measurement rows.
func (f *JacobianFactor) Rows() int {
	if f.ab == nil {
		return 0
	}
	r, _ := f.ab.Dims()

	return r
}

// Dim returns the column width of k and whether k is in scope.
func (f *JacobianFactor) Dim(k core.Key) (int, bool) {
	for i, key := range f.keys {
		if key == k {
			return f.dims[i], true
		}
	}

	return 0, false
}

// Dims returns the per-key widths in scope order.
func (f *JacobianFactor) Dims() []int {
	return append([]int(nil), f.dims...)
}

// A returns the coefficient block of k as a view into the factor, or nil
// when k is out of scope or the factor has no rows.
func (f *JacobianFactor) A(k core.Key) mat.Matrix {
	if f.ab == nil {
		return nil
	}
	off := 0
	for i, key := range f.keys {
		if key == k {
			return f.ab.Slice(0, f.Rows(), off, off+f.dims[i])
		}
		off += f.dims[i]
	}

	return nil
}

// B returns a copy of the right-hand side, or nil for a rowless factor.
func (f *JacobianFactor) B() *mat.VecDense {
	if f.ab == nil {
		return nil
	}
	rows := f.Rows()
	_, cols := f.ab.Dims()
	out := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		out.SetVec(i, f.ab.At(i, cols-1))
	}

	return out
}

// Augmented returns the raw [A | b] block as a view, or nil for a rowless
// factor. Callers must not mutate it.
func (f *JacobianFactor) Augmented() mat.Matrix {
	if f.ab == nil {
		return nil
	}

	return f.ab
}

// Residual evaluates Ax−b at v, or nil for a rowless factor. Every key in
// scope must be assigned with the declared width.
func (f *JacobianFactor) Residual(v VectorValues) (*mat.VecDense, error) {
	rows := f.Rows()
	if rows == 0 {
		return nil, nil
	}
	_, cols := f.ab.Dims()

	res := mat.NewVecDense(rows, nil)
	res.ScaleVec(-1, f.ab.ColView(cols-1))
	off := 0
	for i, k := range f.keys {
		x, ok := v[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, core.DefaultKeyFormatter(k))
		}
		if x.Len() != f.dims[i] {
			return nil, fmt.Errorf("%w: %s has width %d, factor wants %d",
				ErrShape, core.DefaultKeyFormatter(k), x.Len(), f.dims[i])
		}
		var t mat.VecDense
		t.MulVec(f.ab.Slice(0, rows, off, off+f.dims[i]), x)
		res.AddVec(res, &t)
		off += f.dims[i]
	}

	return res, nil
}

// Error evaluates ½‖Ax−b‖² at v.
func (f *JacobianFactor) Error(v VectorValues) (float64, error) {
	res, err := f.Residual(v)
	if err != nil {
		return 0, err
	}
	if res == nil {
		return 0, nil
	}

	return 0.5 * mat.Dot(res, res), nil
}

// Stack stacks factors into a single factor over the union scope. Keys
// keep first-seen order; rows of a factor that lacks a key get zero
// columns there. Widths must agree across factors.
func Stack(factors ...*JacobianFactor) (*JacobianFactor, error) {
	keys, dims, rows, err := scanScope(factors)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		widths := make([]int, len(keys))
		for i, k := range keys {
			widths[i] = dims[k]
		}

		return newZeroRowFactor(keys, widths), nil
	}

	out := &JacobianFactor{
		keys: keys,
		dims: make([]int, len(keys)),
		ab:   stackAugmented(factors, keys, dims, rows),
	}
	for i, k := range keys {
		out.dims[i] = dims[k]
	}

	return out, nil
}

// scanScope collects the union scope of factors in first-seen key order
// together with per-key widths and the total row count.
func scanScope(factors []*JacobianFactor) ([]core.Key, map[core.Key]int, int, error) {
	keys := make([]core.Key, 0, 8)
	dims := make(map[core.Key]int, 8)
	rows := 0
	for _, f := range factors {
		if f == nil {
			return nil, nil, 0, core.ErrEmptySlot
		}
		rows += f.Rows()
		for i, k := range f.keys {
			if w, ok := dims[k]; ok {
				if w != f.dims[i] {
					return nil, nil, 0, fmt.Errorf("%w: %s is %d wide and %d wide",
						ErrDimMismatch, core.DefaultKeyFormatter(k), w, f.dims[i])
				}
				continue
			}
			dims[k] = f.dims[i]
			keys = append(keys, k)
		}
	}

	return keys, dims, rows, nil
}

// stackAugmented copies the factor rows into one rows × (total+1) block
// laid out by keys. rows must be positive.
func stackAugmented(factors []*JacobianFactor, keys []core.Key, dims map[core.Key]int, rows int) *mat.Dense {
	offsets := make(map[core.Key]int, len(keys))
	total := 0
	for _, k := range keys {
		offsets[k] = total
		total += dims[k]
	}

	out := mat.NewDense(rows, total+1, nil)
	row := 0
	for _, f := range factors {
		fr := f.Rows()
		if fr == 0 {
			continue
		}
		_, fc := f.ab.Dims()
		off := 0
		for i, k := range f.keys {
			dst := out.Slice(row, row+fr, offsets[k], offsets[k]+f.dims[i]).(*mat.Dense)
			dst.Copy(f.ab.Slice(0, fr, off, off+f.dims[i]))
			off += f.dims[i]
		}
		for i := 0; i < fr; i++ {
			out.Set(row+i, total, f.ab.At(i, fc-1))
		}
		row += fr
	}

	return out
}
