// Package elimtree - arena tree construction.
package elimtree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// Sentinel errors for elimination-tree operations.
var (
	// ErrNilTree indicates a nil *Tree passed to an elimination entry point.
	ErrNilTree = errors.New("elimtree: tree is nil")

	// ErrNilEliminate indicates a nil eliminator function.
	ErrNilEliminate = errors.New("elimtree: eliminate function is nil")
)

// Node is one vertex of the elimination tree: the variable eliminated
// here, the factors whose earliest-ordered variable this is, and arena
// links to parent and children.
type Node[F core.Factor] struct {
	Key      core.Key
	Factors  []F
	Parent   int   // arena index; -1 for roots
	Children []int // arena indices, all smaller than this node's own index
}

// Tree is an arena-backed elimination tree. Nodes[i] eliminates Order[i],
// and every parent index is larger than all of its children's indices.
type Tree[F core.Factor] struct {
	Nodes []Node[F]
	Roots []int
	Order ordering.Ordering

	// Stray holds factors that reference no ordered variable: empty-scope
	// constants, or factors over kept variables during partial
	// elimination. They bypass elimination and surface in the remaining
	// graph untouched.
	Stray []F
}

// NumNodes reports the number of tree nodes.
func (t *Tree[F]) NumNodes() int { return len(t.Nodes) }

// Build constructs the elimination tree of g under a complete ordering.
//
// Contracts:
//   - g must be non-nil (core.ErrNilGraph otherwise).
//   - vi must describe g; pass nil to have it computed here.
//   - ord must list every indexed variable exactly once; violations
//     surface as the ordering package sentinels (ErrUnknownKey,
//     ErrDuplicateKey, ErrIncompleteOrdering).
//
// Disconnected graphs produce a forest with one root per component.
//
// Complexity: O(m·log n) for m factor entries and n variables.
func Build[F core.Factor](g *core.FactorGraph[F], vi *core.VariableIndex, ord ordering.Ordering) (*Tree[F], error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}
	if vi == nil {
		var err error
		if vi, err = core.NewVariableIndex(g); err != nil {
			return nil, err
		}
	}
	if _, err := ordering.FromKeys(vi, ord); err != nil {
		return nil, fmt.Errorf("elimtree: %w", err)
	}

	return build(g, vi, ord), nil
}

// buildPartial constructs the tree for an ordering that covers only a
// subset of the indexed variables. Factors without any ordered variable
// land in Stray. Used by Marginalize.
func buildPartial[F core.Factor](g *core.FactorGraph[F], vi *core.VariableIndex, ord ordering.Ordering) (*Tree[F], error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}

	seen := make(map[core.Key]struct{}, len(ord))
	for _, k := range ord {
		if !vi.Has(k) {
			return nil, fmt.Errorf("elimtree: %w: %s", ordering.ErrUnknownKey, core.DefaultKeyFormatter(k))
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("elimtree: %w: %s", ordering.ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		seen[k] = struct{}{}
	}

	return build(g, vi, ord), nil
}

// build is the shared single-pass construction. For every ordering
// position j it scans the factors of ord[j]: a factor seen for the first
// time is owned by node j (j is its earliest ordered variable); a factor
// seen before connects the subtree root of its previous column as a child
// of j. Root-finding walks raw parent indices, no path compression.
func build[F core.Factor](g *core.FactorGraph[F], vi *core.VariableIndex, ord ordering.Ordering) *Tree[F] {
	n := len(ord)
	t := &Tree[F]{
		Nodes: make([]Node[F], n),
		Order: make(ordering.Ordering, n),
	}
	copy(t.Order, ord)

	// prevCol[p] is the last node that factor position p contributed a
	// column to; -1 until its earliest ordered variable is reached.
	prevCol := make([]int, g.Len())
	for i := range prevCol {
		prevCol[i] = -1
	}

	for j := 0; j < n; j++ {
		t.Nodes[j] = Node[F]{Key: ord[j], Parent: -1}
		for _, p := range vi.Factors(ord[j]) {
			if prevCol[p] == -1 {
				t.Nodes[j].Factors = append(t.Nodes[j].Factors, g.At(p))
			} else {
				r := prevCol[p]
				for t.Nodes[r].Parent != -1 {
					r = t.Nodes[r].Parent
				}
				if r != j {
					t.Nodes[r].Parent = j
					t.Nodes[j].Children = append(t.Nodes[j].Children, r)
				}
			}
			prevCol[p] = j
		}
	}

	for j := range t.Nodes {
		if t.Nodes[j].Parent == -1 {
			t.Roots = append(t.Roots, j)
		}
	}
	for p := 0; p < g.Len(); p++ {
		if g.Exists(p) && prevCol[p] == -1 {
			t.Stray = append(t.Stray, g.At(p))
		}
	}

	return t
}
