// Package ordering - greedy fill-in minimizing strategy.
//
// MinFill simulates the elimination game on the variable adjacency graph:
// eliminating a variable connects all of its neighbors pairwise, and the
// cost of a candidate is the number of edges that step would add. The
// greedy rule "always eliminate the cheapest variable" is the classic
// COLAMD-flavored default for graphs without exploitable geometry.
//
// Candidate selection uses a lazy min-heap: fill counts of variables near
// an elimination change, so fresh entries are pushed for the affected
// two-ring and stale entries are requeued (or dropped) when popped.
//
// Complexity: O(V·d²·log V) for maximum simulation degree d.
// Memory: O(V·d) for the adjacency sets plus O(V·d) heap entries.
package ordering

import (
	"container/heap"

	"github.com/katalvlaran/factree/core"
)

// adjacency is the undirected variable connectivity graph keyed by variable:
// two variables are adjacent iff some factor mentions both.
type adjacency map[core.Key]map[core.Key]struct{}

// buildAdjacency reconstructs variable connectivity from the index.
// Factor scopes are recovered by inverting key → positions; the double
// loop below then connects each scope pairwise (the factor's clique).
func buildAdjacency(vi *core.VariableIndex) adjacency {
	// Invert the index in ascending key order so scope slices come out
	// sorted; edge insertion itself is order independent.
	scopes := make(map[int][]core.Key, vi.NumFactors())
	keys := vi.KeysSorted()
	for _, k := range keys {
		for _, pos := range vi.Factors(k) {
			scopes[pos] = append(scopes[pos], k)
		}
	}

	adj := make(adjacency, len(keys))
	for _, k := range keys {
		adj[k] = make(map[core.Key]struct{})
	}
	for _, scope := range scopes {
		for i := 0; i < len(scope); i++ {
			for j := i + 1; j < len(scope); j++ {
				adj[scope[i]][scope[j]] = struct{}{}
				adj[scope[j]][scope[i]] = struct{}{}
			}
		}
	}

	return adj
}

// sortedNeighbors returns k's neighborhood in ascending key order.
func (a adjacency) sortedNeighbors(k core.Key) []core.Key {
	nbrs := make([]core.Key, 0, len(a[k]))
	for n := range a[k] {
		nbrs = append(nbrs, n)
	}

	return core.SortKeys(nbrs)
}

// fill counts the edges that eliminating k would add: the number of
// neighbor pairs of k not yet adjacent to each other.
func (a adjacency) fill(k core.Key) int {
	nbrs := make([]core.Key, 0, len(a[k]))
	for n := range a[k] {
		nbrs = append(nbrs, n)
	}

	count := 0
	for i := 0; i < len(nbrs); i++ {
		for j := i + 1; j < len(nbrs); j++ {
			if _, ok := a[nbrs[i]][nbrs[j]]; !ok {
				count++
			}
		}
	}

	return count
}

// eliminate removes k from the graph after connecting its neighbors
// pairwise, and returns k's former neighborhood in ascending key order.
func (a adjacency) eliminate(k core.Key) []core.Key {
	nbrs := a.sortedNeighbors(k)
	for i := 0; i < len(nbrs); i++ {
		for j := i + 1; j < len(nbrs); j++ {
			a[nbrs[i]][nbrs[j]] = struct{}{}
			a[nbrs[j]][nbrs[i]] = struct{}{}
		}
	}
	for _, n := range nbrs {
		delete(a[n], k)
	}
	delete(a, k)

	return nbrs
}

// MinFill computes a greedy fill-in minimizing elimination order.
//
// At every step the variable with the fewest fill edges is eliminated;
// ties break on the smaller key, which makes the result deterministic.
//
// Contracts:
//   - vi must be non-nil (core.ErrNilIndex otherwise).
//   - An empty index yields an empty ordering.
//
// Complexity: O(V·d²·log V), see the package file header.
func MinFill(vi *core.VariableIndex) (Ordering, error) {
	if vi == nil {
		return nil, core.ErrNilIndex
	}

	adj := buildAdjacency(vi)
	n := len(adj)
	order := make(Ordering, 0, n)

	// Seed one exact candidate per variable, in ascending key order.
	pq := make(candPQ, 0, n)
	heap.Init(&pq)
	for _, k := range vi.KeysSorted() {
		heap.Push(&pq, &candItem{key: k, fill: adj.fill(k)})
	}

	eliminated := make(map[core.Key]struct{}, n)
	for len(order) < n {
		item := heap.Pop(&pq).(*candItem)
		if _, done := eliminated[item.key]; done {
			// Stale entry for a variable already taken; drop it.
			continue
		}
		if cur := adj.fill(item.key); cur != item.fill {
			// Stale fill count; requeue with the fresh value and retry.
			item.fill = cur
			heap.Push(&pq, item)

			continue
		}

		// Exact minimum under (fill, key): eliminate it.
		order = append(order, item.key)
		eliminated[item.key] = struct{}{}
		touched := adj.eliminate(item.key)

		// Fill counts can only change inside the two-ring of the
		// eliminated variable. Push exact candidates for all of it so the
		// heap never hides a smaller minimum behind a stale entry.
		refreshed := make(map[core.Key]struct{}, len(touched))
		for _, nb := range touched {
			if _, ok := refreshed[nb]; !ok {
				refreshed[nb] = struct{}{}
				heap.Push(&pq, &candItem{key: nb, fill: adj.fill(nb)})
			}
			for _, nb2 := range adj.sortedNeighbors(nb) {
				if _, ok := refreshed[nb2]; !ok {
					refreshed[nb2] = struct{}{}
					heap.Push(&pq, &candItem{key: nb2, fill: adj.fill(nb2)})
				}
			}
		}
	}

	return order, nil
}

// candItem is one (variable, fill count) candidate in the lazy min-heap.
type candItem struct {
	key  core.Key
	fill int
}

// candPQ is a min-heap of *candItem ordered by fill count, then key.
// Lazy strategy: updates push duplicate entries; outdated ones are dropped
// or requeued when popped (checked against the live adjacency).
type candPQ []*candItem

// Len returns the number of items in the heap.
func (pq candPQ) Len() int { return len(pq) }

// Less defines the comparison: fewer fill edges win, then the smaller key.
func (pq candPQ) Less(i, j int) bool {
	if pq[i].fill != pq[j].fill {
		return pq[i].fill < pq[j].fill
	}

	return pq[i].key < pq[j].key
}

// Swap swaps two elements in the heap.
func (pq candPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *candItem.
func (pq *candPQ) Push(x interface{}) { *pq = append(*pq, x.(*candItem)) }

// Pop removes and returns the smallest element from the heap.
// Called by heap.Pop; returns interface{} that must be cast to *candItem.
func (pq *candPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
