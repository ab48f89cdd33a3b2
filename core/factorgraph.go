package core

import "fmt"

// FactorGraph is an ordered, possibly-sparse collection of factors. Removing
// a factor leaves a hole so that the positions of the remaining factors stay
// stable; variable indices and elimination trees refer to factors by
// position throughout the module.
type FactorGraph[F Factor] struct {
	factors []F
	removed []bool
	holes   int
}

// NewFactorGraph builds a graph over the given factors, positions 0..n-1.
func NewFactorGraph[F Factor](factors ...F) *FactorGraph[F] {
	g := &FactorGraph[F]{
		factors: make([]F, 0, len(factors)),
		removed: make([]bool, 0, len(factors)),
	}
	for _, f := range factors {
		g.Add(f)
	}
	return g
}

// Add appends a factor and returns its position.
func (g *FactorGraph[F]) Add(f F) int {
	g.factors = append(g.factors, f)
	g.removed = append(g.removed, false)
	return len(g.factors) - 1
}

// AddGraph appends every live factor of other, in position order. Holes of
// other are not copied, so positions are not preserved across graphs.
func (g *FactorGraph[F]) AddGraph(other *FactorGraph[F]) {
	if other == nil {
		return
	}
	for i := 0; i < other.Len(); i++ {
		if other.Exists(i) {
			g.Add(other.At(i))
		}
	}
}

// Len reports the number of slots, holes included.
func (g *FactorGraph[F]) Len() int { return len(g.factors) }

// NumFactors reports the number of live factors.
func (g *FactorGraph[F]) NumFactors() int { return len(g.factors) - g.holes }

// Exists reports whether position i holds a live factor. Out-of-range
// positions report false.
func (g *FactorGraph[F]) Exists(i int) bool {
	return i >= 0 && i < len(g.factors) && !g.removed[i]
}

// At returns the factor at position i. It panics on out-of-range positions
// and on holes; guard with Exists when a slot may have been removed.
func (g *FactorGraph[F]) At(i int) F {
	if i < 0 || i >= len(g.factors) {
		panic(fmt.Sprintf("core: factor position %d out of range [0,%d)", i, len(g.factors)))
	}
	if g.removed[i] {
		panic(fmt.Sprintf("core: factor position %d is empty", i))
	}
	return g.factors[i]
}

// Remove empties slot i, keeping all other positions stable. Removing an
// already-empty slot is a no-op; out-of-range positions panic.
func (g *FactorGraph[F]) Remove(i int) {
	if i < 0 || i >= len(g.factors) {
		panic(fmt.Sprintf("core: factor position %d out of range [0,%d)", i, len(g.factors)))
	}
	if g.removed[i] {
		return
	}
	var zero F
	g.factors[i] = zero
	g.removed[i] = true
	g.holes++
}

// Factors returns a dense snapshot of the live factors in position order.
func (g *FactorGraph[F]) Factors() []F {
	out := make([]F, 0, g.NumFactors())
	for i, f := range g.factors {
		if !g.removed[i] {
			out = append(out, f)
		}
	}
	return out
}

// Keys returns the sorted union of all live factors' scopes.
func (g *FactorGraph[F]) Keys() []Key {
	return SortKeys(g.KeysUnordered())
}

// KeysUnordered returns the union of all live factors' scopes in
// first-appearance order, cheaper than Keys when the order is irrelevant.
func (g *FactorGraph[F]) KeysUnordered() []Key {
	seen := make(map[Key]struct{})
	out := make([]Key, 0)
	for i, f := range g.factors {
		if g.removed[i] {
			continue
		}
		for _, k := range f.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				out = append(out, k)
			}
		}
	}
	return out
}

// FactorGraphFromBayesNet reinterprets every conditional of bn as a factor,
// in elimination order. toFactor is typically Family.ToFactor.
func FactorGraphFromBayesNet[F Factor, C Conditional](bn *BayesNet[C], toFactor func(C) F) *FactorGraph[F] {
	g := NewFactorGraph[F]()
	if bn == nil {
		return g
	}
	for i := 0; i < bn.Len(); i++ {
		g.Add(toFactor(bn.At(i)))
	}
	return g
}
