package elimtree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/factree/core"
)

// stubFactor is the minimal Factor used by the structural tests.
type stubFactor struct{ keys []core.Key }

func (f *stubFactor) Keys() []core.Key { return f.keys }

// sf builds a stub factor over the given keys.
func sf(keys ...core.Key) *stubFactor { return &stubFactor{keys: keys} }

// stubConditional is the minimal Conditional produced by symElim.
type stubConditional struct {
	keys []core.Key
	nf   int
}

func (c *stubConditional) Keys() []core.Key     { return c.keys }
func (c *stubConditional) NumFrontals() int     { return c.nf }
func (c *stubConditional) Frontals() []core.Key { return c.keys[:c.nf] }
func (c *stubConditional) Parents() []core.Key  { return c.keys[c.nf:] }

// symElim eliminates symbolically: scope bookkeeping only. The conditional
// covers the frontals plus the sorted leftover scope; the separator factor
// covers the leftover scope alone.
func symElim(factors []*stubFactor, frontals []core.Key) (*stubConditional, *stubFactor, error) {
	isFrontal := make(map[core.Key]struct{}, len(frontals))
	for _, k := range frontals {
		isFrontal[k] = struct{}{}
	}

	seen := make(map[core.Key]struct{})
	var sep []core.Key
	for _, f := range factors {
		for _, k := range f.Keys() {
			if _, fr := isFrontal[k]; fr {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			sep = append(sep, k)
		}
	}
	core.SortKeys(sep)

	condKeys := make([]core.Key, 0, len(frontals)+len(sep))
	condKeys = append(condKeys, frontals...)
	condKeys = append(condKeys, sep...)

	return &stubConditional{keys: condKeys, nf: len(frontals)}, sf(sep...), nil
}

// buildGraph wraps factors and their index, failing the test on error.
func buildGraph(t *testing.T, factors ...*stubFactor) (*core.FactorGraph[*stubFactor], *core.VariableIndex) {
	t.Helper()
	g := core.NewFactorGraph(factors...)
	vi, err := core.NewVariableIndex(g)
	require.NoError(t, err)

	return g, vi
}
