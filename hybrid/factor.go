package hybrid

import (
	"math"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Factor is a factor over continuous variables, discrete modes, or both.
// Its density is proportional to exp(-Error), so factors of either kind
// multiply by adding errors. Continuous, Modal and *Mixture are the three
// implementations Eliminate understands; store the first two by value.
type Factor interface {
	core.Factor

	// ContinuousKeys returns the continuous variables in scope.
	ContinuousKeys() []core.Key

	// DiscreteKeys returns the mode variables in scope with cardinalities.
	DiscreteKeys() []discrete.DiscreteKey

	// Error evaluates -ln of the unnormalized density at v.
	Error(v Values) (float64, error)
}

// Continuous lifts a Gaussian factor into a hybrid graph. Its error is the
// wrapped factor's error and it involves no modes.
type Continuous struct {
	*gaussian.JacobianFactor
}

// ContinuousKeys returns the wrapped factor's scope.
func (f Continuous) ContinuousKeys() []core.Key { return f.JacobianFactor.Keys() }

// DiscreteKeys returns nil.
func (f Continuous) DiscreteKeys() []discrete.DiscreteKey { return nil }

// Error evaluates the wrapped factor at v.Continuous.
func (f Continuous) Error(v Values) (float64, error) {
	return f.JacobianFactor.Error(v.Continuous)
}

// Modal lifts a discrete table factor into a hybrid graph. Its error is
// -ln of the table value, so a zero cell is an impossible assignment with
// error +Inf.
type Modal struct {
	*discrete.TableFactor
}

// ContinuousKeys returns nil.
func (f Modal) ContinuousKeys() []core.Key { return nil }

// Error evaluates -ln of the table value at v.Discrete.
func (f Modal) Error(v Values) (float64, error) {
	p, err := f.TableFactor.Value(v.Discrete)
	if err != nil {
		return 0, err
	}
	return -math.Log(p), nil
}
