// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/factree/core"
)

// Conditional is a linear-Gaussian density P(frontals | parents) stored in
// square-root form as one augmented block [R S | d]: R is upper-triangular
// over the frontal columns, S holds the parent columns and d is the
// right-hand side. The density is
//
//	P(x | p) ∝ exp(−½‖Rx + Sp − d‖²)
//
// with normalization constant derived from diag(R).
//
// Conditional implements core.Conditional.
type Conditional struct {
	keys        []core.Key
	dims        []int
	nf          int // leading keys that are frontal
	fCols       int // summed frontal width, the row count of rsd
	rsd         *mat.Dense
	negLogConst float64
}

// NewConditional builds a conditional over keys with the given per-key
// widths, the first numFrontal keys frontal, from the augmented block rsd
// of fCols rows and total+1 columns. The frontal block must be
// upper-triangular with all diagonal entries nonzero.
func NewConditional(keys []core.Key, dims []int, numFrontal int, rsd *mat.Dense) (*Conditional, error) {
	if len(keys) != len(dims) {
		return nil, fmt.Errorf("%w: %d keys with %d widths", ErrShape, len(keys), len(dims))
	}
	if numFrontal < 1 || numFrontal > len(keys) {
		return nil, fmt.Errorf("%w: %d frontal keys of %d", ErrShape, numFrontal, len(keys))
	}
	total := 0
	fCols := 0
	for i, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: width %d for %s", ErrShape, d, core.DefaultKeyFormatter(keys[i]))
		}
		for _, k := range keys[:i] {
			if k == keys[i] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, core.DefaultKeyFormatter(keys[i]))
			}
		}
		total += d
		if i < numFrontal {
			fCols += d
		}
	}
	if rsd == nil {
		return nil, fmt.Errorf("%w: nil augmented block", ErrShape)
	}
	if r, c := rsd.Dims(); r != fCols || c != total+1 {
		return nil, fmt.Errorf("%w: augmented block is %dx%d, want %dx%d", ErrShape, r, c, fCols, total+1)
	}
	for i := 0; i < fCols; i++ {
		for j := 0; j < i; j++ {
			if rsd.At(i, j) != 0 {
				return nil, fmt.Errorf("%w: R block not upper-triangular at %d,%d", ErrShape, i, j)
			}
		}
		if math.Abs(rsd.At(i, i)) <= pivotTolerance {
			return nil, fmt.Errorf("%w: zero diagonal at %d", ErrShape, i)
		}
	}

	c := &Conditional{
		keys:  append([]core.Key(nil), keys...),
		dims:  append([]int(nil), dims...),
		nf:    numFrontal,
		fCols: fCols,
		rsd:   rsd,
	}
	c.negLogConst = 0.5 * float64(fCols) * math.Log(2*math.Pi)
	for i := 0; i < fCols; i++ {
		c.negLogConst -= math.Log(math.Abs(rsd.At(i, i)))
	}

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

// FrontalDim returns the summed width of the frontal variables.
func (c *Conditional) FrontalDim() int { return c.fCols }

// R returns the upper-triangular frontal block as a view.
func (c *Conditional) R() mat.Matrix {
	return c.rsd.Slice(0, c.fCols, 0, c.fCols)
}

// S returns the parent block as a view, or nil when there are no parents.
func (c *Conditional) S() mat.Matrix {
	_, cols := c.rsd.Dims()
	if cols-1 == c.fCols {
		return nil
	}

	return c.rsd.Slice(0, c.fCols, c.fCols, cols-1)
}

// D returns a copy of the right-hand side.
func (c *Conditional) D() *mat.VecDense {
	_, cols := c.rsd.Dims()
	out := mat.NewVecDense(c.fCols, nil)
	for i := 0; i < c.fCols; i++ {
		out.SetVec(i, c.rsd.At(i, cols-1))
	}

	return out
}

// NegLogConstant returns −ln k where k normalizes the density:
// ½·dim·ln(2π) − Σ ln|R_ii|.
func (c *Conditional) NegLogConstant() float64 { return c.negLogConst }

// Error evaluates ½‖Rx + Sp − d‖² at v. All frontal and parent keys must
// be assigned.
func (c *Conditional) Error(v VectorValues) (float64, error) {
	return c.AsJacobian().Error(v)
}

// LogProbability evaluates ln P(frontals | parents) at v, the negated
// error minus the normalization constant.
func (c *Conditional) LogProbability(v VectorValues) (float64, error) {
	e, err := c.Error(v)
	if err != nil {
		return 0, err
	}

	return -c.negLogConst - e, nil
}

// Solve computes the frontal means given parent values by back
// substitution: x = R⁻¹(d − S·p). parents must assign every parent key;
// extra keys are ignored.
func (c *Conditional) Solve(parents VectorValues) (VectorValues, error) {
	return c.solveShifted(parents, nil)
}

// SampleWithRNG draws one sample x = R⁻¹(d − S·p + z) with z standard
// normal, split per frontal key. rng must not be nil.
func (c *Conditional) SampleWithRNG(parents VectorValues, rng *rand.Rand) (VectorValues, error) {
	if rng == nil {
		panic("gaussian: SampleWithRNG requires a non-nil rng")
	}
	z := make([]float64, c.fCols)
	for i := range z {
		z[i] = rng.NormFloat64()
	}

	return c.solveShifted(parents, z)
}

// solveShifted back-substitutes R·x = d − S·p + shift. A nil shift solves
// for the mean.
func (c *Conditional) solveShifted(parents VectorValues, shift []float64) (VectorValues, error) {
	_, cols := c.rsd.Dims()
	rhs := make([]float64, c.fCols)
	for i := range rhs {
		rhs[i] = c.rsd.At(i, cols-1)
	}
	if shift != nil {
		for i := range rhs {
			rhs[i] += shift[i]
		}
	}

	off := c.fCols
	for i := c.nf; i < len(c.keys); i++ {
		p, ok := parents[c.keys[i]]
		if !ok {
			return nil, fmt.Errorf("%w: parent %s", ErrMissingValue, core.DefaultKeyFormatter(c.keys[i]))
		}
		if p.Len() != c.dims[i] {
			return nil, fmt.Errorf("%w: parent %s has width %d, want %d",
				ErrShape, core.DefaultKeyFormatter(c.keys[i]), p.Len(), c.dims[i])
		}
		var t mat.VecDense
		t.MulVec(c.rsd.Slice(0, c.fCols, off, off+c.dims[i]), p)
		for r := 0; r < c.fCols; r++ {
			rhs[r] -= t.AtVec(r)
		}
		off += c.dims[i]
	}

	x := make([]float64, c.fCols)
	for i := c.fCols - 1; i >= 0; i-- {
		s := rhs[i]
		for j := i + 1; j < c.fCols; j++ {
			s -= c.rsd.At(i, j) * x[j]
		}
		x[i] = s / c.rsd.At(i, i)
	}

	out := make(VectorValues, c.nf)
	off = 0
	for i := 0; i < c.nf; i++ {
		out[c.keys[i]] = mat.NewVecDense(c.dims[i], append([]float64(nil), x[off:off+c.dims[i]]...))
		off += c.dims[i]
	}

	return out, nil
}

// AsJacobian reinterprets the conditional as the factor ½‖[R S]x − d‖²
// over its full scope. The tree engines use this to turn conditionals back
// into factor-graph material.
func (c *Conditional) AsJacobian() *JacobianFactor {
	return &JacobianFactor{
		keys: c.keys,
		dims: c.dims,
		ab:   mat.DenseCopyOf(c.rsd),
	}
}
