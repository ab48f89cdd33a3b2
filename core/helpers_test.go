package core_test

import "github.com/katalvlaran/factree/core"

// stubFactor is the minimal Factor used by the structural tests.
type stubFactor struct{ keys []core.Key }

func (f *stubFactor) Keys() []core.Key { return f.keys }

// sf builds a stub factor over the given keys.
func sf(keys ...core.Key) *stubFactor { return &stubFactor{keys: keys} }

// stubConditional is the minimal Conditional used by the BayesNet tests.
type stubConditional struct {
	keys []core.Key
	nf   int
}

func (c *stubConditional) Keys() []core.Key     { return c.keys }
func (c *stubConditional) NumFrontals() int     { return c.nf }
func (c *stubConditional) Frontals() []core.Key { return c.keys[:c.nf] }
func (c *stubConditional) Parents() []core.Key  { return c.keys[c.nf:] }

// sc builds a stub conditional with nf leading frontal keys.
func sc(nf int, keys ...core.Key) *stubConditional {
	return &stubConditional{keys: keys, nf: nf}
}
