// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/katalvlaran/factree/core"
)

// Deterministic defaults shared by all constructors.
const (
	// defaultSigma is the measurement noise of unwhitened fixtures.
	defaultSigma = 1.0
	// defaultNoiseSeed replaces seed 0 in WithSeed, keeping unseeded
	// draws reproducible.
	defaultNoiseSeed int64 = 1
)

// builderConfig aggregates the knobs of every constructor. It is passed by
// value so a constructor cannot leak state into the next build.
type builderConfig struct {
	sigma      float64    // measurement noise, rows scale by 1/sigma
	rng        *rand.Rand // nil means zero measurements and default tables
	firstIndex uint64     // index of the first variable
	symbolChr  byte       // 0 means plain integer keys
}

// newBuilderConfig applies opts in order over the deterministic defaults.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		sigma:      defaultSigma,
		rng:        nil,
		firstIndex: 0,
		symbolChr:  0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// key maps the i-th variable of a fixture to its Key under the configured
// scheme.
func (c builderConfig) key(i int) core.Key {
	idx := c.firstIndex + uint64(i)
	if c.symbolChr != 0 {
		return core.Symbol(c.symbolChr, idx)
	}

	return core.Key(idx)
}

// measurement draws one measured value: zero without an rng, N(0, sigma²)
// with one.
func (c builderConfig) measurement() float64 {
	if c.rng == nil {
		return 0
	}

	return c.sigma * c.rng.NormFloat64()
}

// cell draws one unnormalized table cell, bounded away from zero so no
// fixture ever carries an impossible assignment.
func (c builderConfig) cell() float64 {
	return 0.5 + c.rng.Float64()
}
