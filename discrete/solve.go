package discrete

import (
	"context"
	"fmt"

	"github.com/katalvlaran/factree/bayestree"
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
	"github.com/katalvlaran/factree/junction"
	"github.com/katalvlaran/factree/ordering"
)

const panicEliminateNil = "discrete: WithEliminate: elim must be non-nil"

// Option tunes the elimination pipelines.
type Option func(*solveConfig)

type solveConfig struct {
	ord   ordering.Ordering
	algo  ordering.Algorithm
	elim  core.Eliminate[*TableFactor, *Conditional]
	jopts []junction.Option
}

// WithOrdering fixes the elimination ordering. It must cover exactly the
// graph's keys; a nil ordering keeps the computed default.
func WithOrdering(ord ordering.Ordering) Option {
	return func(c *solveConfig) { c.ord = ord }
}

// WithOrderingAlgorithm selects the ordering heuristic used when no
// explicit ordering is given. The default is ordering.MinFillOrder.
func WithOrderingAlgorithm(algo ordering.Algorithm) Option {
	return func(c *solveConfig) { c.algo = algo }
}

// WithEliminate swaps the eliminator, EliminateSum by default. SumProduct
// and MaxProduct override it.
func WithEliminate(elim core.Eliminate[*TableFactor, *Conditional]) Option {
	if elim == nil {
		panic(panicEliminateNil)
	}

	return func(c *solveConfig) { c.elim = elim }
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
	cfg := solveConfig{algo: ordering.MinFillOrder, elim: EliminateSum}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// resolveOrdering returns the explicit ordering when one was given and
// computes one with the configured heuristic otherwise.
func resolveOrdering(g *FactorGraph, cfg solveConfig) (ordering.Ordering, error) {
	if cfg.ord != nil {
		return cfg.ord, nil
	}
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		return nil, err
	}

	return ordering.Compute(vi, cfg.algo)
}

// EliminateSequential eliminates the whole graph variable by variable and
// returns the Bayes net plus whatever empty-scope constant factors remain.
func EliminateSequential(g *FactorGraph, opts ...Option) (*BayesNet, []*TableFactor, error) {
	cfg := gatherSolveOptions(opts)
	ord, err := resolveOrdering(g, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("discrete: sequential: %w", err)
	}
	bn, remaining, err := elimtree.EliminateSequential(g, ord, cfg.elim)
	if err != nil {
		return nil, nil, fmt.Errorf("discrete: sequential: %w", err)
	}

	return &BayesNet{bn}, remaining, nil
}

// EliminateMultifrontal eliminates the whole graph clique by clique and
// returns the Bayes tree plus the remaining constant factors. The
// eliminator chosen with WithEliminate also serves the tree's later
// marginal queries and updates.
func EliminateMultifrontal(g *FactorGraph, opts ...Option) (*BayesTree, []*TableFactor, error) {
	cfg := gatherSolveOptions(opts)
	ord, err := resolveOrdering(g, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("discrete: multifrontal: %w", err)
	}
	fam := Family
	fam.Eliminate = cfg.elim
	bt, remaining, err := bayestree.EliminateMultifrontal(g, ord, fam, cfg.jopts...)
	if err != nil {
		return nil, nil, fmt.Errorf("discrete: multifrontal: %w", err)
	}

	return &BayesTree{bt}, remaining, nil
}

// SumProduct runs sequential sum-product elimination over g and returns
// the posterior as a Bayes net, dropping the leftover scale constants.
func SumProduct(g *FactorGraph, opts ...Option) (*BayesNet, error) {
	bn, _, err := EliminateSequential(g, append(opts, WithEliminate(EliminateSum))...)

	return bn, err
}

// MaxProduct runs sequential max-product elimination over g. Optimize on
// the result decodes the most probable explanation.
func MaxProduct(g *FactorGraph, opts ...Option) (*BayesNet, error) {
	bn, _, err := EliminateSequential(g, append(opts, WithEliminate(EliminateMax))...)

	return bn, err
}
