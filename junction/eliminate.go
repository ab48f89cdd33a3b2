// Package junction - cluster elimination, serial and pooled.
package junction

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/factree/core"
)

// Internal panic messages for option constructors.
const (
	panicWorkersInvalid = "junction: WithWorkers: n must be at least 1"
	panicContextNil     = "junction: WithContext: ctx must be non-nil"
)

// Option tunes tree construction and cluster elimination. Build reads the
// merge barrier and ignores the rest; EliminateClusters reads the context
// and worker count. Safe to apply repeatedly; constructors panic only on
// nonsensical values (programmer error).
type Option func(*config)

type config struct {
	ctx     context.Context
	workers int
	barrier func(child, parent core.Key) bool
}

// WithContext makes the elimination cancelable: the context is checked
// before every cluster and cancels the worker pool.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(panicContextNil)
	}

	return func(c *config) { c.ctx = ctx }
}

// WithWorkers sets the worker pool size. n == 1 (the default) eliminates
// serially; larger n eliminates independent subtrees concurrently.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(c *config) { c.workers = n }
}

// WithMergeBarrier blocks Build from merging an elimination node into its
// parent when block(child, parent) reports true, where child and parent are
// the nodes' frontal keys. Barred pairs stay separate clusters even when the
// separator growth rule would absorb them. Eliminators whose conditionals
// cannot span both keys (mixed variable kinds, say) use this to keep each
// cluster homogeneous. A nil block merges freely.
func WithMergeBarrier(block func(child, parent core.Key) bool) Option {
	return func(c *config) { c.barrier = block }
}

func gatherOptions(opts []Option) config {
	cfg := config{ctx: context.Background(), workers: 1}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// CliqueResult is the outcome of eliminating one cluster: the multifrontal
// conditional, the cluster's parent (same arena indexing as the junction
// tree) and the separator factor the eliminator produced, kept as the
// clique's cached factor for incremental updates.
type CliqueResult[F core.Factor, C core.Conditional] struct {
	Conditional C
	Parent      int
	Cached      F
}

// EliminateClusters runs elim over every cluster, children before parents,
// and returns one CliqueResult per cluster plus the remaining factors
// (stray constants and root separator factors, in root order).
//
// The gathered input of a cluster is its own factors followed by its
// children's separator factors in child order, so results do not depend on
// the pool schedule. Eliminator failures cancel everything and come back
// wrapped with the cluster's frontals.
func EliminateClusters[F core.Factor, C core.Conditional](t *Tree[F], elim core.Eliminate[F, C], opts ...Option) ([]CliqueResult[F, C], []F, error) {
	if t == nil {
		return nil, nil, ErrNilTree
	}
	if elim == nil {
		return nil, nil, ErrNilEliminate
	}
	cfg := gatherOptions(opts)

	n := len(t.Clusters)
	results := make([]CliqueResult[F, C], n)
	rootSep := make([]F, len(t.Roots))

	// slot[c] is c's position in its parent's child list, or its position
	// in Roots for root clusters. Separator factors land in fixed slots.
	slot := make([]int, n)
	childSep := make([][]F, n)
	for j := range t.Clusters {
		childSep[j] = make([]F, len(t.Clusters[j].Children))
		for si, c := range t.Clusters[j].Children {
			slot[c] = si
		}
	}
	for ri, r := range t.Roots {
		slot[r] = ri
	}

	runCluster := func(j int) (F, error) {
		cluster := &t.Clusters[j]
		gathered := make([]F, 0, len(cluster.Factors)+len(childSep[j]))
		gathered = append(gathered, cluster.Factors...)
		gathered = append(gathered, childSep[j]...)

		cond, sep, err := elim(gathered, cluster.Frontals)
		if err != nil {
			var zero F

			return zero, fmt.Errorf("junction: eliminate [%s]: %w",
				core.FormatKeys(cluster.Frontals, nil), err)
		}
		results[j] = CliqueResult[F, C]{Conditional: cond, Parent: cluster.Parent, Cached: sep}

		return sep, nil
	}

	store := func(j int, sep F) {
		if p := t.Clusters[j].Parent; p >= 0 {
			childSep[p][slot[j]] = sep
		} else {
			rootSep[slot[j]] = sep
		}
	}

	if cfg.workers == 1 {
		// Serial forward sweep; the arena order is a postorder.
		for j := 0; j < n; j++ {
			if err := cfg.ctx.Err(); err != nil {
				return nil, nil, err
			}
			sep, err := runCluster(j)
			if err != nil {
				return nil, nil, err
			}
			store(j, sep)
		}
	} else if n > 0 {
		if err := eliminatePooled(cfg, t, runCluster, store); err != nil {
			return nil, nil, err
		}
	}

	remaining := make([]F, 0, len(t.Stray)+len(rootSep))
	remaining = append(remaining, t.Stray...)
	remaining = append(remaining, rootSep...)

	return results, remaining, nil
}

// eliminatePooled drains a dependency-counted ready queue with a worker
// pool: a cluster enters the queue once all of its children are done, so
// children always join before their parent.
func eliminatePooled[F core.Factor](cfg config, t *Tree[F], runCluster func(int) (F, error), store func(int, F)) error {
	n := len(t.Clusters)
	depsLeft := make([]atomic.Int32, n)
	ready := make(chan int, n)
	for j := range t.Clusters {
		if deps := len(t.Clusters[j].Children); deps > 0 {
			depsLeft[j].Store(int32(deps))
		} else {
			ready <- j
		}
	}

	var processed atomic.Int32
	grp, ctx := errgroup.WithContext(cfg.ctx)
	for w := 0; w < cfg.workers; w++ {
		grp.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case j, ok := <-ready:
					if !ok {
						return nil
					}
					if err := ctx.Err(); err != nil {
						return err
					}
					sep, err := runCluster(j)
					if err != nil {
						return err
					}
					store(j, sep)
					if p := t.Clusters[j].Parent; p >= 0 && depsLeft[p].Add(-1) == 0 {
						ready <- p
					}
					if int(processed.Add(1)) == n {
						close(ready)
					}
				}
			}
		})
	}

	return grp.Wait()
}
