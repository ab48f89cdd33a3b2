package core

import "fmt"

// VariableIndex maps every variable to the ordered list of factor positions
// that involve it. It is the structural input of the ordering strategies and
// of elimination-tree construction, and it remembers the order in which keys
// were first seen so the natural ordering is reproducible.
type VariableIndex struct {
	entries  map[Key][]int
	order    []Key // keys in first-seen order
	nFactors int   // highest indexed position + 1
	nEntries int   // total (key, factor) incidences
}

// NewVariableIndex scans every live factor of g. Positions of holes are
// skipped but still counted into NumFactors so indices line up with g.
func NewVariableIndex[F Factor](g *FactorGraph[F]) (*VariableIndex, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	vi := &VariableIndex{entries: make(map[Key][]int)}
	for i := 0; i < g.Len(); i++ {
		if !g.Exists(i) {
			continue
		}
		vi.add(i, g.At(i).Keys())
	}
	vi.nFactors = g.Len()
	return vi, nil
}

// AugmentIndex indexes additional factors of g into vi. With no explicit
// positions it indexes every position at or beyond vi.NumFactors(), which is
// the common "factors were appended to g" case.
func AugmentIndex[F Factor](vi *VariableIndex, g *FactorGraph[F], positions ...int) error {
	if vi == nil {
		return ErrNilIndex
	}
	if g == nil {
		return ErrNilGraph
	}
	if len(positions) == 0 {
		for i := vi.nFactors; i < g.Len(); i++ {
			positions = append(positions, i)
		}
	}
	for _, i := range positions {
		if !g.Exists(i) {
			return fmt.Errorf("core: augment position %d: %w", i, ErrEmptySlot)
		}
		vi.add(i, g.At(i).Keys())
		if i >= vi.nFactors {
			vi.nFactors = i + 1
		}
	}
	return nil
}

// RemoveFromIndex drops the incidences of the given factor positions. The
// factors must still be live in g (remove from the index first, then from
// the graph). Keys left with no factors are forgotten entirely, first-seen
// order of the remaining keys is preserved.
func RemoveFromIndex[F Factor](vi *VariableIndex, g *FactorGraph[F], positions ...int) error {
	if vi == nil {
		return ErrNilIndex
	}
	if g == nil {
		return ErrNilGraph
	}
	emptied := false
	for _, i := range positions {
		if !g.Exists(i) {
			return fmt.Errorf("core: remove position %d: %w", i, ErrEmptySlot)
		}
		for _, k := range g.At(i).Keys() {
			list := vi.entries[k]
			for j, pos := range list {
				if pos == i {
					list = append(list[:j], list[j+1:]...)
					vi.nEntries--
					break
				}
			}
			if len(list) == 0 {
				delete(vi.entries, k)
				emptied = true
			} else {
				vi.entries[k] = list
			}
		}
	}
	if emptied {
		kept := vi.order[:0]
		for _, k := range vi.order {
			if _, ok := vi.entries[k]; ok {
				kept = append(kept, k)
			}
		}
		vi.order = kept
	}
	return nil
}

// add records one factor's scope. Positions arrive in ascending order per
// key because callers scan graphs front to back.
func (vi *VariableIndex) add(pos int, keys []Key) {
	for _, k := range keys {
		if _, ok := vi.entries[k]; !ok {
			vi.order = append(vi.order, k)
		}
		vi.entries[k] = append(vi.entries[k], pos)
		vi.nEntries++
	}
}

// Factors returns a copy of the ordered factor positions involving k, nil
// when k is unknown to the index.
func (vi *VariableIndex) Factors(k Key) []int {
	list, ok := vi.entries[k]
	if !ok {
		return nil
	}
	out := make([]int, len(list))
	copy(out, list)
	return out
}

// Has reports whether k occurs in any indexed factor.
func (vi *VariableIndex) Has(k Key) bool {
	_, ok := vi.entries[k]
	return ok
}

// Len reports the number of distinct keys.
func (vi *VariableIndex) Len() int { return len(vi.entries) }

// NumEntries reports the total number of (key, factor) incidences.
func (vi *VariableIndex) NumEntries() int { return vi.nEntries }

// NumFactors reports the number of factor slots observed (holes included).
func (vi *VariableIndex) NumFactors() int { return vi.nFactors }

// Keys returns the keys in first-seen order.
func (vi *VariableIndex) Keys() []Key {
	out := make([]Key, len(vi.order))
	copy(out, vi.order)
	return out
}

// KeysSorted returns the keys in ascending order.
func (vi *VariableIndex) KeysSorted() []Key {
	return SortKeys(vi.Keys())
}

// String renders "key: positions" lines sorted by key, for debugging.
func (vi *VariableIndex) String() string {
	keys := vi.KeysSorted()
	out := fmt.Sprintf("VariableIndex(%d keys, %d factors, %d entries)\n",
		vi.Len(), vi.NumFactors(), vi.NumEntries())
	for _, k := range keys {
		out += fmt.Sprintf("  %s:", DefaultKeyFormatter(k))
		for _, pos := range vi.entries[k] {
			out += fmt.Sprintf(" %d", pos)
		}
		out += "\n"
	}
	return out
}
