// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/factree/discrete"
)

const (
	methodMarkovChain = "MarkovChain"
	minMarkovLength   = 2
	minMarkovStates   = 2

	// defaultStayProbability is the diagonal of the default transition
	// table; off-diagonal mass splits evenly, so the table is doubly
	// stochastic and the uniform prior is stationary.
	defaultStayProbability = 0.7
)

// MarkovChain builds the discrete chain x₀ → x₁ → … → x₍n₋₁₎ over n
// variables of the given cardinality: a prior table on key(0) and one
// transition table per link, cells laid out as P(next | current).
//
// Without a seed the prior is uniform and every transition keeps its state
// with probability 0.7, so all single-variable marginals stay uniform.
// WithSeed draws positive random tables instead, row-normalized.
//
// Time and space O(n·card²).
func MarkovChain(n, card int, opts ...Option) (*discrete.FactorGraph, error) {
	if n < minMarkovLength {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodMarkovChain, n, minMarkovLength, ErrTooFewVariables)
	}
	if card < minMarkovStates {
		return nil, fmt.Errorf("%s: card=%d < min=%d: %w", methodMarkovChain, card, minMarkovStates, ErrBadCardinality)
	}
	cfg := newBuilderConfig(opts...)

	g := discrete.NewFactorGraph()
	pri, err := discrete.NewTableFactor(
		[]discrete.DiscreteKey{{Key: cfg.key(0), Card: card}},
		priorCells(cfg, card))
	if err != nil {
		return nil, fmt.Errorf("%s: prior: %w", methodMarkovChain, err)
	}
	g.Add(pri)

	for i := 1; i < n; i++ {
		tf, err := discrete.NewTableFactor(
			[]discrete.DiscreteKey{
				{Key: cfg.key(i - 1), Card: card},
				{Key: cfg.key(i), Card: card},
			},
			transitionCells(cfg, card))
		if err != nil {
			return nil, fmt.Errorf("%s: transition %d: %w", methodMarkovChain, i, err)
		}
		g.Add(tf)
	}

	return g, nil
}

// priorCells returns the distribution of the first state: uniform, or a
// normalized positive draw when an rng is configured.
func priorCells(cfg builderConfig, card int) []float64 {
	cells := make([]float64, card)
	if cfg.rng == nil {
		for s := range cells {
			cells[s] = 1 / float64(card)
		}

		return cells
	}

	total := 0.0
	for s := range cells {
		cells[s] = cfg.cell()
		total += cells[s]
	}
	for s := range cells {
		cells[s] /= total
	}

	return cells
}

// transitionCells returns one P(next | current) table in row-major order,
// current state slowest. Rows sum to one.
func transitionCells(cfg builderConfig, card int) []float64 {
	cells := make([]float64, card*card)
	if cfg.rng == nil {
		move := (1 - defaultStayProbability) / float64(card-1)
		for cur := 0; cur < card; cur++ {
			for next := 0; next < card; next++ {
				if cur == next {
					cells[cur*card+next] = defaultStayProbability
				} else {
					cells[cur*card+next] = move
				}
			}
		}

		return cells
	}

	for cur := 0; cur < card; cur++ {
		row := cells[cur*card : (cur+1)*card]
		total := 0.0
		for next := range row {
			row[next] = cfg.cell()
			total += row[next]
		}
		for next := range row {
			row[next] /= total
		}
	}

	return cells
}
