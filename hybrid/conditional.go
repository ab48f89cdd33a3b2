package hybrid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Conditional wraps exactly one of the three conditional forms elimination
// produces: a Gaussian over continuous frontals, a discrete table over mode
// frontals, or a mode-switched Gaussian mixture. The identity
// -ln P(v) = Error(v) + NegLogConstant() holds whichever form is inside.
type Conditional struct {
	cont *gaussian.Conditional
	disc *discrete.Conditional
	mix  *MixtureConditional
}

// FromGaussian wraps a purely continuous conditional. Panics on nil.
func FromGaussian(c *gaussian.Conditional) *Conditional {
	if c == nil {
		panic("hybrid: FromGaussian: nil conditional")
	}

	return &Conditional{cont: c}
}

// FromDiscrete wraps a purely discrete conditional. Panics on nil.
func FromDiscrete(c *discrete.Conditional) *Conditional {
	if c == nil {
		panic("hybrid: FromDiscrete: nil conditional")
	}

	return &Conditional{disc: c}
}

// FromMixture wraps a mode-switched conditional. Panics on nil.
func FromMixture(c *MixtureConditional) *Conditional {
	if c == nil {
		panic("hybrid: FromMixture: nil conditional")
	}

	return &Conditional{mix: c}
}

// IsContinuous reports whether the conditional is purely Gaussian.
func (c *Conditional) IsContinuous() bool { return c.cont != nil }

// IsDiscrete reports whether the conditional is purely discrete.
func (c *Conditional) IsDiscrete() bool { return c.disc != nil }

// IsHybrid reports whether the conditional switches on modes.
func (c *Conditional) IsHybrid() bool { return c.mix != nil }

// AsGaussian returns the wrapped Gaussian conditional, or nil.
func (c *Conditional) AsGaussian() *gaussian.Conditional { return c.cont }

// AsDiscrete returns the wrapped discrete conditional, or nil.
func (c *Conditional) AsDiscrete() *discrete.Conditional { return c.disc }

// AsMixture returns the wrapped mixture conditional, or nil.
func (c *Conditional) AsMixture() *MixtureConditional { return c.mix }

// Keys returns the wrapped conditional's keys, frontals first.
func (c *Conditional) Keys() []core.Key { return c.inner().Keys() }

// NumFrontals returns the number of frontal keys.
func (c *Conditional) NumFrontals() int { return c.inner().NumFrontals() }

// Frontals returns the frontal keys.
func (c *Conditional) Frontals() []core.Key { return c.inner().Frontals() }

// Parents returns the parent keys; for a mixture the modes are parents.
func (c *Conditional) Parents() []core.Key { return c.inner().Parents() }

// Choose returns the Gaussian density the assignment selects: the wrapped
// conditional itself when purely continuous, the selected branch of a
// mixture, and ErrNotContinuous for a discrete conditional.
func (c *Conditional) Choose(modes discrete.Values) (*gaussian.Conditional, error) {
	switch {
	case c.cont != nil:
		return c.cont, nil
	case c.mix != nil:
		return c.mix.Choose(modes)
	default:
		return nil, fmt.Errorf("%w: discrete conditional over [%s]", ErrNotContinuous, core.FormatKeys(c.disc.Frontals(), nil))
	}
}

// Error evaluates the wrapped conditional's error at v. A discrete
// conditional's error is -ln of its probability.
func (c *Conditional) Error(v Values) (float64, error) {
	switch {
	case c.cont != nil:
		return c.cont.Error(v.Continuous)
	case c.disc != nil:
		p, err := c.disc.Value(v.Discrete)
		if err != nil {
			return 0, err
		}

		return -math.Log(p), nil
	default:
		return c.mix.Error(v)
	}
}

// LogProbability evaluates ln P(frontals | parents) at v.
func (c *Conditional) LogProbability(v Values) (float64, error) {
	switch {
	case c.cont != nil:
		return c.cont.LogProbability(v.Continuous)
	case c.disc != nil:
		return c.disc.LogProbability(v.Discrete)
	default:
		return c.mix.LogProbability(v)
	}
}

// NegLogConstant returns -ln of the wrapped density's normalization
// constant. Discrete conditionals are normalized tables, so theirs is zero.
func (c *Conditional) NegLogConstant() float64 {
	switch {
	case c.cont != nil:
		return c.cont.NegLogConstant()
	case c.disc != nil:
		return 0
	default:
		return c.mix.NegLogConstant()
	}
}

func (c *Conditional) inner() core.Conditional {
	switch {
	case c.cont != nil:
		return c.cont
	case c.disc != nil:
		return c.disc
	default:
		return c.mix
	}
}
