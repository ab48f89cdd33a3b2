// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// Option customizes a constructor by mutating its builderConfig before the
// build starts. Option constructors validate their arguments and panic on
// meaningless values; the constructors themselves never panic.
type Option func(*builderConfig)

// WithSigma sets the measurement noise of the Gaussian fixtures. Every
// factor row is whitened by 1/sigma and seeded measurements are drawn with
// standard deviation sigma. Panics when sigma is not positive.
func WithSigma(sigma float64) Option {
	if sigma <= 0 {
		panic("builder: WithSigma(sigma<=0)")
	}
	return func(c *builderConfig) {
		c.sigma = sigma
	}
}

// WithSeed attaches a seeded rng, turning the zero right-hand sides of the
// Gaussian fixtures into N(0, sigma²) draws and the fixed MarkovChain
// tables into random positive ones. Seed 0 selects the fixed default seed.
func WithSeed(seed int64) Option {
	if seed == 0 {
		seed = defaultNoiseSeed
	}
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFirstIndex shifts the variable indices so fixtures can coexist in one
// graph without key collisions.
func WithFirstIndex(first uint64) Option {
	return func(c *builderConfig) {
		c.firstIndex = first
	}
}

// WithSymbolChr makes the fixture produce core.Symbol(chr, index) keys, so
// renderings read "x0 x1 x2" instead of raw integers. Panics unless chr is
// an ASCII letter, the range DefaultKeyFormatter prints symbolically.
func WithSymbolChr(chr byte) Option {
	if !(chr >= 'a' && chr <= 'z') && !(chr >= 'A' && chr <= 'Z') {
		panic("builder: WithSymbolChr: chr is not an ASCII letter")
	}
	return func(c *builderConfig) {
		c.symbolChr = chr
	}
}
