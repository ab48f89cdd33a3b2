// Package ordering - nested dissection strategy.
//
// NestedDissection recursively splits the variable adjacency graph with a
// BFS level-structure separator: two sweeps from a pseudo-peripheral vertex
// build the level structure, the median level becomes the separator, and
// the halves on both sides recurse. Interiors are ordered before their
// separator, so the top separator lands at the very end of the ordering
// and becomes the root of the downstream Bayes tree.
//
// Small or unsplittable parts fall back to a local fill-in minimizing
// sweep, which keeps leaf quality close to MinFill.
//
// Complexity: O((V+E)·log V) for the dissection itself plus the leaf
// sweeps; memory O(V+E).
package ordering

import (
	"github.com/katalvlaran/factree/core"
)

// dissectionLeafSize is the part size below which recursion stops and the
// part is ordered by the local fill-in sweep instead.
const dissectionLeafSize = 8

// NestedDissection computes a nested dissection elimination order.
//
// Contracts:
//   - vi must be non-nil (core.ErrNilIndex otherwise).
//   - An empty index yields an empty ordering.
//
// Deterministic: BFS roots, neighbor expansion and all tie-breaks follow
// ascending key order.
func NestedDissection(vi *core.VariableIndex) (Ordering, error) {
	if vi == nil {
		return nil, core.ErrNilIndex
	}

	adj := buildAdjacency(vi)
	order := make(Ordering, 0, len(adj))

	// dissect appends the elimination order of part (sorted ascending)
	// to order: interiors of both halves first, separator last.
	var dissect func(part []core.Key)
	dissect = func(part []core.Key) {
		if len(part) <= dissectionLeafSize {
			order = append(order, minFillWithin(adj, part)...)

			return
		}

		// Disconnected parts split into components; each one is an
		// independent subproblem.
		comps := components(adj, part)
		if len(comps) > 1 {
			for _, comp := range comps {
				dissect(comp)
			}

			return
		}

		// Level structure from a pseudo-peripheral vertex. Fewer than
		// three levels means the part has no usable bisection (near
		// complete graphs); order it locally instead.
		levels := levelStructure(adj, part)
		if len(levels) < 3 {
			order = append(order, minFillWithin(adj, part)...)

			return
		}

		mid := medianLevel(levels, len(part))
		var left, right, sep []core.Key
		for i, lv := range levels {
			switch {
			case i < mid:
				left = append(left, lv...)
			case i > mid:
				right = append(right, lv...)
			default:
				sep = append(sep, lv...)
			}
		}

		// Levels are at distance ≥ 2 across the separator, so left and
		// right share no edges and recurse independently.
		dissect(core.SortKeys(left))
		dissect(core.SortKeys(right))
		order = append(order, core.SortKeys(sep)...)
	}

	dissect(vi.KeysSorted())

	return order, nil
}

// minFillWithin orders part by a local greedy fill-in sweep on the induced
// subgraph. Linear candidate scan per step; parts here are small.
func minFillWithin(adj adjacency, part []core.Key) []core.Key {
	sub := inducedAdjacency(adj, part)
	out := make([]core.Key, 0, len(part))

	remaining := make([]core.Key, len(part))
	copy(remaining, part)
	for len(remaining) > 0 {
		// Pick min (fill, key); remaining stays sorted ascending, so the
		// first strict improvement wins ties on the smaller key.
		best := 0
		bestFill := sub.fill(remaining[0])
		for i := 1; i < len(remaining); i++ {
			if f := sub.fill(remaining[i]); f < bestFill {
				best, bestFill = i, f
			}
		}

		k := remaining[best]
		sub.eliminate(k)
		out = append(out, k)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return out
}

// inducedAdjacency copies the subgraph of adj restricted to part.
func inducedAdjacency(adj adjacency, part []core.Key) adjacency {
	in := make(map[core.Key]struct{}, len(part))
	for _, k := range part {
		in[k] = struct{}{}
	}

	sub := make(adjacency, len(part))
	for _, k := range part {
		s := make(map[core.Key]struct{})
		for n := range adj[k] {
			if _, ok := in[n]; ok {
				s[n] = struct{}{}
			}
		}
		sub[k] = s
	}

	return sub
}

// components splits part (sorted ascending) into connected components of
// the induced subgraph. Components come out ordered by their smallest
// member, each sorted ascending.
func components(adj adjacency, part []core.Key) [][]core.Key {
	in := make(map[core.Key]struct{}, len(part))
	for _, k := range part {
		in[k] = struct{}{}
	}

	visited := make(map[core.Key]struct{}, len(part))
	var comps [][]core.Key
	for _, start := range part {
		if _, ok := visited[start]; ok {
			continue
		}

		// Plain BFS flood from the smallest unvisited key.
		comp := []core.Key{start}
		visited[start] = struct{}{}
		for head := 0; head < len(comp); head++ {
			for _, n := range adj.sortedNeighbors(comp[head]) {
				if _, inside := in[n]; !inside {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				comp = append(comp, n)
			}
		}
		comps = append(comps, core.SortKeys(comp))
	}

	return comps
}

// levelStructure returns the BFS levels of the (connected) part rooted at
// a pseudo-peripheral vertex: one sweep from the smallest key finds a
// deepest vertex, the second sweep from there yields the final structure.
func levelStructure(adj adjacency, part []core.Key) [][]core.Key {
	in := make(map[core.Key]struct{}, len(part))
	for _, k := range part {
		in[k] = struct{}{}
	}

	first := bfsLevels(adj, in, part[0])
	last := first[len(first)-1]
	far := core.SortKeys(last)[0]

	return bfsLevels(adj, in, far)
}

// bfsLevels runs a BFS restricted to the membership set and groups the
// vertices by distance from start. Each level comes out sorted ascending.
func bfsLevels(adj adjacency, in map[core.Key]struct{}, start core.Key) [][]core.Key {
	visited := map[core.Key]struct{}{start: {}}
	frontier := []core.Key{start}

	var levels [][]core.Key
	for len(frontier) > 0 {
		level := make([]core.Key, len(frontier))
		copy(level, frontier)
		levels = append(levels, core.SortKeys(level))

		var next []core.Key
		for _, k := range frontier {
			for _, n := range adj.sortedNeighbors(k) {
				if _, inside := in[n]; !inside {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				next = append(next, n)
			}
		}
		frontier = next
	}

	return levels
}

// medianLevel picks the level whose cumulative vertex count first reaches
// half of the part, clamped so both sides of the split stay non-empty.
func medianLevel(levels [][]core.Key, total int) int {
	half := total / 2
	cum := 0
	mid := len(levels) / 2
	for i, lv := range levels {
		cum += len(lv)
		if cum >= half {
			mid = i

			break
		}
	}

	if mid < 1 {
		mid = 1
	}
	if mid > len(levels)-2 {
		mid = len(levels) - 2
	}

	return mid
}
