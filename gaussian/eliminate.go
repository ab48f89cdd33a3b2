// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
)

// pivotTolerance is the smallest triangular diagonal magnitude accepted
// during elimination. Anything at or below it means the frontal variables
// are not fully constrained by the gathered factors.
const pivotTolerance = 1e-12

// EliminateQR eliminates the frontal keys from factors by stacked
// orthogonal factorization. The stacked augmented system is padded with
// zero rows up to its column count, factorized, and the triangle is split
// at the frontal width: the top becomes the conditional, the rest the
// separator factor. Separator columns may be rank-deficient; only a zero
// pivot inside the frontal block is an error, reported as
// *core.IndeterminateError.
//
// EliminateQR satisfies core.Eliminate and is the Family default.
func EliminateQR(factors []*JacobianFactor, frontals []core.Key) (*Conditional, *JacobianFactor, error) {
	keys, dims, fCols, rows, err := gatherScope(factors, frontals)
	if err != nil {
		return nil, nil, err
	}

	total := 0
	for _, d := range dims {
		total += d
	}
	padRows := max(rows, total+1)
	m := mat.NewDense(padRows, total+1, nil)
	if rows > 0 {
		dm := make(map[core.Key]int, len(keys))
		for i, k := range keys {
			dm[k] = dims[i]
		}
		m.Slice(0, rows, 0, total+1).(*mat.Dense).Copy(stackAugmented(factors, keys, dm, rows))
	}

	var qr mat.QR
	qr.Factorize(m)
	var r mat.Dense
	qr.RTo(&r)
	for i := 0; i <= total; i++ {
		if r.At(i, i) < 0 {
			for j := i; j <= total; j++ {
				r.Set(i, j, -r.At(i, j))
			}
		}
	}

	return splitAugmented(keys, dims, fCols, len(frontals), &r, min(rows, total+1))
}

// EliminateCholesky eliminates the frontal keys via the normal equations:
// H = AᵀA is factorized as UᵀU, the right-hand side is forward-substituted
// and the residual norm is kept as a constant row. This is faster than
// EliminateQR but stricter: it requires every variable in scope, separator
// included, to be fully constrained, and reports anything less as
// *core.IndeterminateError.
//
// EliminateCholesky satisfies core.Eliminate; FamilyCholesky bundles it.
func EliminateCholesky(factors []*JacobianFactor, frontals []core.Key) (*Conditional, *JacobianFactor, error) {
	keys, dims, fCols, rows, err := gatherScope(factors, frontals)
	if err != nil {
		return nil, nil, err
	}
	if rows == 0 {
		return nil, nil, core.NewIndeterminateError("no measurement rows", frontals...)
	}

	total := 0
	for _, d := range dims {
		total += d
	}
	dm := make(map[core.Key]int, len(keys))
	for i, k := range keys {
		dm[k] = dims[i]
	}
	stacked := stackAugmented(factors, keys, dm, rows)
	a := stacked.Slice(0, rows, 0, total)
	b := stacked.ColView(total)

	var h mat.Dense
	h.Mul(a.T(), a)
	hs := mat.NewSymDense(total, nil)
	for i := 0; i < total; i++ {
		for j := i; j < total; j++ {
			hs.SetSym(i, j, h.At(i, j))
		}
	}
	var ch mat.Cholesky
	if !ch.Factorize(hs) {
		return nil, nil, core.NewIndeterminateError("system not positive definite", frontals...)
	}
	var lt mat.TriDense
	ch.LTo(&lt)

	var eta mat.VecDense
	eta.MulVec(a.T(), b)
	d := make([]float64, total)
	for i := 0; i < total; i++ {
		s := eta.AtVec(i)
		for j := 0; j < i; j++ {
			s -= lt.At(i, j) * d[j]
		}
		d[i] = s / lt.At(i, i)
	}

	raug := mat.NewDense(total+1, total+1, nil)
	e2 := mat.Dot(b, b)
	for i := 0; i < total; i++ {
		for j := i; j < total; j++ {
			raug.Set(i, j, lt.At(j, i))
		}
		raug.Set(i, total, d[i])
		e2 -= d[i] * d[i]
	}
	usedRows := total
	if e2 > pivotTolerance {
		raug.Set(total, total, math.Sqrt(e2))
		usedRows++
	}

	return splitAugmented(keys, dims, fCols, len(frontals), raug, usedRows)
}

// gatherScope lays out the elimination scope of factors: the frontal keys
// first in caller order, then the remaining keys sorted ascending. It
// returns the ordered keys, their widths, the summed frontal width and the
// total row count. A frontal key no factor gives a width for is
// unconstrained and reported as *core.IndeterminateError.
func gatherScope(factors []*JacobianFactor, frontals []core.Key) ([]core.Key, []int, int, int, error) {
	if len(frontals) == 0 {
		return nil, nil, 0, 0, fmt.Errorf("%w: no frontal keys", ErrShape)
	}
	scope, widths, rows, err := scanScope(factors)
	if err != nil {
		return nil, nil, 0, 0, err
	}

	isFrontal := make(map[core.Key]bool, len(frontals))
	var missing []core.Key
	for _, k := range frontals {
		if isFrontal[k] {
			return nil, nil, 0, 0, fmt.Errorf("%w: frontal %s", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		isFrontal[k] = true
		if _, ok := widths[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, nil, 0, 0, core.NewIndeterminateError("unconstrained variable", missing...)
	}

	keys := make([]core.Key, 0, len(scope))
	keys = append(keys, frontals...)
	for _, k := range scope {
		if !isFrontal[k] {
			keys = append(keys, k)
		}
	}
	core.SortKeys(keys[len(frontals):])

	dims := make([]int, len(keys))
	fCols := 0
	for i, k := range keys {
		dims[i] = widths[k]
		if i < len(frontals) {
			fCols += dims[i]
		}
	}

	return keys, dims, fCols, rows, nil
}

// splitAugmented splits the triangular augmented block raug at the frontal
// width: rows [0, fCols) become the conditional over keys, rows
// [fCols, usedRows) the factor over the separator keys. Zero pivots inside
// the frontal block surface as *core.IndeterminateError.
func splitAugmented(keys []core.Key, dims []int, fCols, nfKeys int, raug *mat.Dense, usedRows int) (*Conditional, *JacobianFactor, error) {
	for i := 0; i < fCols; i++ {
		if math.Abs(raug.At(i, i)) <= pivotTolerance {
			return nil, nil, core.NewIndeterminateError("zero pivot during elimination", keys[:nfKeys]...)
		}
	}
	total := 0
	for _, d := range dims {
		total += d
	}

	rsd := mat.NewDense(fCols, total+1, nil)
	rsd.Copy(raug.Slice(0, fCols, 0, total+1))
	cond, err := NewConditional(keys, dims, nfKeys, rsd)
	if err != nil {
		return nil, nil, fmt.Errorf("gaussian: split conditional: %w", err)
	}

	sepKeys := keys[nfKeys:]
	sepDims := dims[nfKeys:]
	sepRows := usedRows - fCols
	if sepRows <= 0 {
		return cond, newZeroRowFactor(sepKeys, sepDims), nil
	}
	ab := mat.NewDense(sepRows, total-fCols+1, nil)
	ab.Copy(raug.Slice(fCols, usedRows, fCols, total+1))
	sep := &JacobianFactor{
		keys: append([]core.Key(nil), sepKeys...),
		dims: append([]int(nil), sepDims...),
		ab:   ab,
	}

	return cond, sep, nil
}
