package bayestree

import (
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
	"github.com/katalvlaran/factree/junction"
	"github.com/katalvlaran/factree/ordering"
)

// RemoveTop detaches every clique on the root paths of the given keys and
// returns their conditionals, root first along each path, plus the arena
// positions of the subtrees orphaned by the removal. Orphans keep their
// own structure but lose their parent link until Update or Reattach hangs
// them back. Keys that are not frontal anywhere are ignored.
func (t *Tree[F, C]) RemoveTop(keys []core.Key) ([]C, []int) {
	var conds []C
	var cut []int
	for _, k := range keys {
		start, ok := t.index[k]
		if !ok {
			continue
		}
		var path []int
		for c := start; c != -1 && !t.removed[c]; c = t.cliques[c].Parent {
			path = append(path, c)
		}
		for i := len(path) - 1; i >= 0; i-- {
			c := path[i]
			t.tombstone(c)
			conds = append(conds, t.cliques[c].Conditional)
			cut = append(cut, c)
		}
	}

	var orphans []int
	for _, c := range cut {
		for _, ch := range t.cliques[c].Children {
			if t.removed[ch] {
				continue
			}
			t.cliques[ch].Parent = -1
			t.invalidateMarginals(ch)
			orphans = append(orphans, ch)
		}
		t.cliques[c].Children = nil
	}

	return conds, orphans
}

// Reattach hangs a detached clique under a live parent. The orphan's
// separator must be contained in the parent's scope and the parent must not
// lie inside the orphan's subtree. Attaching a root of the forest under
// another tree is allowed; its empty separator is covered trivially.
func (t *Tree[F, C]) Reattach(orphan, parent int) error {
	o := t.Clique(orphan)
	p := t.Clique(parent)
	if o.Parent != -1 {
		return fmt.Errorf("%w: clique %d has parent %d", ErrNotDetached, orphan, o.Parent)
	}
	for c := parent; c != -1; c = t.cliques[c].Parent {
		if c == orphan {
			return fmt.Errorf("%w: clique %d is under clique %d", ErrWouldCycle, parent, orphan)
		}
	}
	scope := make(map[core.Key]struct{})
	for _, k := range p.Conditional.Keys() {
		scope[k] = struct{}{}
	}
	for _, k := range o.Conditional.Parents() {
		if _, ok := scope[k]; !ok {
			return fmt.Errorf("%w: key %s outside clique %d", ErrSeparatorNotCovered, core.DefaultKeyFormatter(k), parent)
		}
	}

	t.dropRoot(orphan)
	o.Parent = parent
	p.Children = append(p.Children, orphan)
	t.invalidateMarginals(orphan)

	return nil
}

// Update folds new factors into the tree. The cliques whose frontal keys
// the new factors touch are removed together with their ancestors, their
// conditionals re-enter a small factor graph alongside the new factors and
// one structural stub per orphan separator, the graph is re-eliminated with
// the requested ordering and the fresh cliques are grafted back. Each
// orphan re-attaches under the clique holding its earliest eliminated
// separator key; untouched subtrees are not revisited.
//
// On error the tree must be discarded: removal may already have happened.
func (t *Tree[F, C]) Update(newFactors []F, algo ordering.Algorithm, opts ...junction.Option) error {
	seen := make(map[core.Key]struct{})
	var touched []core.Key
	for _, f := range newFactors {
		for _, k := range f.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				touched = append(touched, k)
			}
		}
	}
	conds, orphans := t.RemoveTop(touched)

	top := make([]F, 0, len(conds)+len(newFactors)+len(orphans))
	for _, c := range conds {
		top = append(top, t.family.ToFactor(c))
	}
	top = append(top, newFactors...)
	for _, o := range orphans {
		if len(t.cliques[o].Conditional.Parents()) > 0 {
			top = append(top, t.family.OrphanStub(t.cliques[o].Conditional))
		}
	}

	g := core.NewFactorGraph(top...)
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		return fmt.Errorf("bayestree: update: %w", err)
	}
	ord, err := ordering.Compute(vi, algo)
	if err != nil {
		return fmt.Errorf("bayestree: update: %w", err)
	}
	et, err := elimtree.Build(g, vi, ord)
	if err != nil {
		return fmt.Errorf("bayestree: update: %w", err)
	}
	jt, err := junction.Build(et, opts...)
	if err != nil {
		return fmt.Errorf("bayestree: update: %w", err)
	}
	results, _, err := junction.EliminateClusters(jt, t.family.Eliminate, opts...)
	if err != nil {
		return fmt.Errorf("bayestree: update: %w", err)
	}
	if err := t.graft(results); err != nil {
		return err
	}

	pos := ord.Positions()
	for _, o := range orphans {
		seps := t.cliques[o].Conditional.Parents()
		if len(seps) == 0 {
			t.roots = append(t.roots, o)
			continue
		}
		earliest, at := seps[0], len(ord)
		for _, k := range seps {
			p, ok := pos[k]
			if !ok {
				panic(fmt.Sprintf("bayestree: separator key %s missing from update ordering", core.DefaultKeyFormatter(k)))
			}
			if p < at {
				earliest, at = k, p
			}
		}
		parent, ok := t.index[earliest]
		if !ok {
			panic(fmt.Sprintf("bayestree: separator key %s vanished during update", core.DefaultKeyFormatter(earliest)))
		}
		if err := t.Reattach(o, parent); err != nil {
			return fmt.Errorf("bayestree: update: %w", err)
		}
	}

	return nil
}

// tombstone marks a clique removed: its frontal keys leave the index, it
// leaves the root list and its memoized marginal is dropped.
func (t *Tree[F, C]) tombstone(i int) {
	t.removed[i] = true
	t.live--
	for _, k := range t.cliques[i].Conditional.Frontals() {
		delete(t.index, k)
	}
	t.dropRoot(i)
	t.cliques[i].sepMarginal = nil
	t.cliques[i].hasSepMarginal = false
}

// invalidateMarginals clears the memoized separator marginals of a whole
// subtree; they depend on the ancestry above it.
func (t *Tree[F, C]) invalidateMarginals(i int) {
	t.cliques[i].sepMarginal = nil
	t.cliques[i].hasSepMarginal = false
	for _, ch := range t.cliques[i].Children {
		t.invalidateMarginals(ch)
	}
}

func (t *Tree[F, C]) dropRoot(i int) {
	for ri, r := range t.roots {
		if r == i {
			t.roots = append(t.roots[:ri], t.roots[ri+1:]...)

			return
		}
	}
}
