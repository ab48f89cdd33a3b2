package hybrid

import (
	"github.com/katalvlaran/factree/discrete"
	"github.com/katalvlaran/factree/gaussian"
)

// Values is a joint assignment over both variable kinds: vectors for the
// continuous keys and states for the mode keys. The two maps never share a
// key.
type Values struct {
	Continuous gaussian.VectorValues
	Discrete   discrete.Values
}

// NewValues returns an empty assignment with both maps ready for use.
func NewValues() Values {
	return Values{
		Continuous: gaussian.NewVectorValues(),
		Discrete:   make(discrete.Values),
	}
}

// Copy returns a deep copy of v.
func (v Values) Copy() Values {
	return Values{
		Continuous: v.Continuous.Copy(),
		Discrete:   v.Discrete.Copy(),
	}
}
