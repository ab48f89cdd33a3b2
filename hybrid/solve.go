package hybrid

import (
	"context"
	"fmt"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/elimtree"
	"github.com/katalvlaran/factree/junction"
	"github.com/katalvlaran/factree/ordering"
)

// Option tunes the elimination pipelines.
type Option func(*solveConfig)

type solveConfig struct {
	ord   ordering.Ordering
	algo  ordering.Algorithm
	jopts []junction.Option
}

// WithOrdering fixes the elimination ordering. It must cover exactly the
// graph's keys and is taken as given: callers constrain mode keys to the
// back themselves, or the elimination fails with
// ErrDiscreteBeforeContinuous. A nil ordering keeps the computed default.
func WithOrdering(ord ordering.Ordering) Option {
	return func(c *solveConfig) { c.ord = ord }
}

// WithOrderingAlgorithm selects the heuristic behind the default
// constrained ordering. The default is ordering.MinFillOrder.
func WithOrderingAlgorithm(algo ordering.Algorithm) Option {
	return func(c *solveConfig) { c.algo = algo }
}

// WithContext makes multifrontal elimination cancelable. Sequential
// elimination ignores it.
func WithContext(ctx context.Context) Option {
	jopt := junction.WithContext(ctx)

	return func(c *solveConfig) { c.jopts = append(c.jopts, jopt) }
}

// WithWorkers sets the multifrontal worker pool size. Sequential
// elimination ignores it.
func WithWorkers(n int) Option {
	jopt := junction.WithWorkers(n)

	return func(c *solveConfig) { c.jopts = append(c.jopts, jopt) }
}

func gatherSolveOptions(opts []Option) solveConfig {
	cfg := solveConfig{algo: ordering.MinFillOrder}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// resolveOrdering returns the explicit ordering when one was given and
// computes a constrained one otherwise.
func resolveOrdering(g *FactorGraph, cfg solveConfig) (ordering.Ordering, error) {
	if cfg.ord != nil {
		return cfg.ord, nil
	}

	return OrderingConstrainedLast(g, cfg.algo)
}

// EliminateSequential eliminates the whole graph variable by variable and
// returns the Bayes net plus whatever empty-scope constant factors remain.
func EliminateSequential(g *FactorGraph, opts ...Option) (*BayesNet, []Factor, error) {
	cfg := gatherSolveOptions(opts)
	ord, err := resolveOrdering(g, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("hybrid: sequential: %w", err)
	}
	bn, remaining, err := elimtree.EliminateSequential(g, ord, Eliminate)
	if err != nil {
		return nil, nil, fmt.Errorf("hybrid: sequential: %w", err)
	}

	return &BayesNet{bn}, remaining, nil
}

// EliminateMultifrontal eliminates the whole graph clique by clique and
// returns the Bayes tree plus the remaining constant factors. Clique
// merging runs behind a kind barrier so no clique mixes continuous and
// mode frontals.
func EliminateMultifrontal(g *FactorGraph, opts ...Option) (*BayesTree, []Factor, error) {
	cfg := gatherSolveOptions(opts)
	ord, err := resolveOrdering(g, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("hybrid: multifrontal: %w", err)
	}
	jopts := append(cfg.jopts, junction.WithMergeBarrier(MergeBarrier(g)))
	bt, remaining, err := bayestree.EliminateMultifrontal(g, ord, Family, jopts...)
	if err != nil {
		return nil, nil, fmt.Errorf("hybrid: multifrontal: %w", err)
	}

	return &BayesTree{bt}, remaining, nil
}
