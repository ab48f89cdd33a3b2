// Package junction - cluster tree construction over an elimination tree.
package junction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
)

// Sentinel errors for junction-tree operations.
var (
	// ErrNilTree indicates a nil elimination or junction tree.
	ErrNilTree = errors.New("junction: tree is nil")

	// ErrNilEliminate indicates a nil eliminator function.
	ErrNilEliminate = errors.New("junction: eliminate function is nil")
)

// Cluster is one vertex of the junction tree: the frontal variables it
// eliminates (in elimination order), the factors gathered from its merged
// elimination-tree nodes, its sorted separator, and arena links.
type Cluster[F core.Factor] struct {
	Frontals  []core.Key
	Separator []core.Key // sorted ascending
	Factors   []F
	Parent    int   // arena index; -1 for roots
	Children  []int // arena indices, all smaller than this cluster's index
}

// Tree is an arena-backed junction tree. Parents always follow their
// children in the arena, so a forward sweep is a valid postorder.
type Tree[F core.Factor] struct {
	Clusters []Cluster[F]
	Roots    []int

	// Stray passes through the elimination tree's unattached factors.
	Stray []F
}

// NumClusters reports the number of clusters.
func (t *Tree[F]) NumClusters() int { return len(t.Clusters) }

// Build clusters the elimination tree. A bottom-up symbolic pass computes
// every node's separator, then each child merges into its parent exactly
// when the child separator is the parent separator plus the parent
// variable (checked by size; running intersection covers containment).
// A WithMergeBarrier option vetoes individual merges on top of that rule.
//
// Complexity: O(total separator sizes) for the symbolic pass plus
// O(n·log n) for the frontal sorting of merged clusters.
func Build[F core.Factor](et *elimtree.Tree[F], opts ...Option) (*Tree[F], error) {
	if et == nil {
		return nil, ErrNilTree
	}
	cfg := gatherOptions(opts)

	n := len(et.Nodes)
	pos := et.Order.Positions()

	// Node-level symbolic separators: everything a node's gathered scope
	// mentions beyond its own variable.
	seps := make([]map[core.Key]struct{}, n)
	for j := 0; j < n; j++ {
		s := make(map[core.Key]struct{})
		for _, f := range et.Nodes[j].Factors {
			for _, k := range f.Keys() {
				if k != et.Nodes[j].Key {
					s[k] = struct{}{}
				}
			}
		}
		for _, c := range et.Nodes[j].Children {
			for k := range seps[c] {
				if k != et.Nodes[j].Key {
					s[k] = struct{}{}
				}
			}
		}
		seps[j] = s
	}

	// One proto-cluster per node; merges absorb earlier protos into later
	// ones and transfer their children upward, so surviving parents are
	// always alive.
	type proto struct {
		frontals []core.Key
		sep      []core.Key
		factors  []F
		parent   int
		children []int
		dead     bool
	}
	protos := make([]proto, n)
	for j := 0; j < n; j++ {
		protos[j] = proto{
			frontals: []core.Key{et.Nodes[j].Key},
			sep:      sortedKeySet(seps[j]),
			factors:  append([]F(nil), et.Nodes[j].Factors...),
			parent:   -1,
		}

		for _, c := range et.Nodes[j].Children {
			barred := cfg.barrier != nil && cfg.barrier(et.Nodes[c].Key, et.Nodes[j].Key)
			if len(seps[c]) == len(seps[j])+1 && !barred {
				// The child's scope is exactly this node plus this
				// node's separator: same clique.
				protos[j].frontals = append(protos[j].frontals, protos[c].frontals...)
				protos[j].factors = append(protos[j].factors, protos[c].factors...)
				for _, cc := range protos[c].children {
					protos[cc].parent = j
					protos[j].children = append(protos[j].children, cc)
				}
				protos[c].dead = true
			} else {
				protos[c].parent = j
				protos[j].children = append(protos[j].children, c)
			}
		}
	}

	// Compact the proto arena, dropping absorbed clusters and remapping
	// links. Frontals of merged clusters sort back into elimination order.
	t := &Tree[F]{Stray: append([]F(nil), et.Stray...)}
	remap := make([]int, n)
	for j := range protos {
		if protos[j].dead {
			remap[j] = -1

			continue
		}
		remap[j] = len(t.Clusters)

		fr := protos[j].frontals
		sort.Slice(fr, func(a, b int) bool { return pos[fr[a]] < pos[fr[b]] })

		t.Clusters = append(t.Clusters, Cluster[F]{
			Frontals:  fr,
			Separator: protos[j].sep,
			Factors:   protos[j].factors,
			Parent:    protos[j].parent, // remapped below
		})
	}
	for i := range t.Clusters {
		if p := t.Clusters[i].Parent; p >= 0 {
			t.Clusters[i].Parent = remap[p]
			t.Clusters[remap[p]].Children = append(t.Clusters[remap[p]].Children, i)
		}
	}
	for i := range t.Clusters {
		if t.Clusters[i].Parent == -1 {
			t.Roots = append(t.Roots, i)
		}
	}

	return t, nil
}

// Validate checks the structural invariants of the cluster arena: link
// symmetry, children-before-parents order, frontal uniqueness and the
// running intersection property (every separator is covered by the parent
// cluster's scope). Violations of these indicate a construction bug.
func (t *Tree[F]) Validate() error {
	seenFrontal := make(map[core.Key]int)
	for i := range t.Clusters {
		cl := &t.Clusters[i]
		if len(cl.Frontals) == 0 {
			return fmt.Errorf("junction: cluster %d has no frontals", i)
		}
		for _, k := range cl.Frontals {
			if prev, dup := seenFrontal[k]; dup {
				return fmt.Errorf("junction: frontal %s in clusters %d and %d",
					core.DefaultKeyFormatter(k), prev, i)
			}
			seenFrontal[k] = i
		}

		switch p := cl.Parent; {
		case p == -1:
			if len(cl.Separator) != 0 {
				return fmt.Errorf("junction: root cluster %d has separator %s",
					i, core.FormatKeys(cl.Separator, nil))
			}
		case p <= i || p >= len(t.Clusters):
			return fmt.Errorf("junction: cluster %d has parent %d out of order", i, p)
		default:
			scope := make(map[core.Key]struct{})
			for _, k := range t.Clusters[p].Frontals {
				scope[k] = struct{}{}
			}
			for _, k := range t.Clusters[p].Separator {
				scope[k] = struct{}{}
			}
			for _, k := range cl.Separator {
				if _, ok := scope[k]; !ok {
					return fmt.Errorf("junction: separator key %s of cluster %d not in parent %d",
						core.DefaultKeyFormatter(k), i, p)
				}
			}

			found := false
			for _, c := range t.Clusters[p].Children {
				if c == i {
					found = true

					break
				}
			}
			if !found {
				return fmt.Errorf("junction: cluster %d missing from children of %d", i, p)
			}
		}
	}

	return nil
}

// sortedKeySet flattens a key set into an ascending slice.
func sortedKeySet(s map[core.Key]struct{}) []core.Key {
	out := make([]core.Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	return core.SortKeys(out)
}
