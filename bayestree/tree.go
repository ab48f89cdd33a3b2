package bayestree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/elimtree"
	"github.com/katalvlaran/factree/junction"
	"github.com/katalvlaran/factree/ordering"
)

var (
	// ErrIncompleteFamily signals a core.Family missing Eliminate, ToFactor
	// or OrphanStub; the tree needs all three.
	ErrIncompleteFamily = errors.New("bayestree: family needs Eliminate, ToFactor and OrphanStub")

	// ErrMalformedCliques signals clique results whose parent links or
	// frontal keys do not describe a children-first forest.
	ErrMalformedCliques = errors.New("bayestree: malformed clique results")

	// ErrUnknownKey signals a query for a key that is not frontal in any
	// live clique.
	ErrUnknownKey = errors.New("bayestree: key not in any clique")

	// ErrNotDetached signals a Reattach of a clique that still has a parent.
	ErrNotDetached = errors.New("bayestree: clique already attached")

	// ErrSeparatorNotCovered signals a Reattach whose target clique does not
	// contain the orphan's separator, which would break the running
	// intersection property.
	ErrSeparatorNotCovered = errors.New("bayestree: separator not covered by new parent")

	// ErrWouldCycle signals a Reattach whose target lies inside the orphan's
	// own subtree.
	ErrWouldCycle = errors.New("bayestree: re-attachment would create a cycle")
)

// Clique is one node of the Bayes tree: the conditional produced when its
// frontal variables were eliminated, tree links into the arena, and the
// separator factor cached from elimination.
type Clique[F core.Factor, C core.Conditional] struct {
	// Conditional is P(frontals | separator). Its Frontals() are the
	// variables this clique owns, its Parents() the separator.
	Conditional C

	// Parent is the arena position of the parent clique, -1 for roots and
	// for orphans detached by RemoveTop.
	Parent int

	// Children are arena positions of child cliques.
	Children []int

	// cached is the separator factor elimination produced alongside the
	// conditional, kept for re-linearization workflows.
	cached F

	// sepMarginal memoizes the factors whose product is the marginal over
	// this clique's separator.
	sepMarginal    []F
	hasSepMarginal bool
}

// CachedFactor returns the separator factor recorded when the clique was
// eliminated. For roots this is an empty-scope constant.
func (c *Clique[F, C]) CachedFactor() F { return c.cached }

// Tree is a Bayes tree (in general a forest) over an arena of cliques.
// RemoveTop tombstones cliques in place rather than compacting the arena,
// so positions handed out earlier stay valid across updates.
type Tree[F core.Factor, C core.Conditional] struct {
	family  core.Family[F, C]
	cliques []Clique[F, C]
	removed []bool
	roots   []int
	index   map[core.Key]int // frontal key -> arena position
	live    int
}

// New wires junction elimination results into a Bayes tree. The results
// must come children before parents, the way junction.EliminateClusters
// emits them. An empty result slice yields an empty tree, which Update can
// grow from scratch.
func New[F core.Factor, C core.Conditional](family core.Family[F, C], results []junction.CliqueResult[F, C]) (*Tree[F, C], error) {
	if family.Eliminate == nil || family.ToFactor == nil || family.OrphanStub == nil {
		return nil, ErrIncompleteFamily
	}
	t := &Tree[F, C]{family: family, index: make(map[core.Key]int)}
	if err := t.graft(results); err != nil {
		return nil, err
	}

	return t, nil
}

// EliminateMultifrontal eliminates a factor graph along the given ordering
// and returns the resulting Bayes tree plus the factors elimination never
// consumed (empty-scope constants). The pipeline is variable index,
// elimination tree, junction tree, per-cluster elimination, clique arena;
// junction options control clique merging, the worker pool and cancellation.
func EliminateMultifrontal[F core.Factor, C core.Conditional](g *core.FactorGraph[F], ord ordering.Ordering, family core.Family[F, C], opts ...junction.Option) (*Tree[F, C], []F, error) {
	if family.Eliminate == nil || family.ToFactor == nil || family.OrphanStub == nil {
		return nil, nil, ErrIncompleteFamily
	}
	et, err := elimtree.Build(g, nil, ord)
	if err != nil {
		return nil, nil, err
	}
	jt, err := junction.Build(et, opts...)
	if err != nil {
		return nil, nil, err
	}
	results, remaining, err := junction.EliminateClusters(jt, family.Eliminate, opts...)
	if err != nil {
		return nil, nil, err
	}
	t, err := New(family, results)
	if err != nil {
		return nil, nil, err
	}

	return t, remaining, nil
}

// graft appends one clique per result, shifting parent links by the current
// arena length, then links children and indexes frontal keys.
func (t *Tree[F, C]) graft(results []junction.CliqueResult[F, C]) error {
	offset := len(t.cliques)
	for i, res := range results {
		if res.Parent != -1 && (res.Parent <= i || res.Parent >= len(results)) {
			return fmt.Errorf("%w: clique %d names parent %d", ErrMalformedCliques, i, res.Parent)
		}
		parent := -1
		if res.Parent != -1 {
			parent = offset + res.Parent
		}
		t.cliques = append(t.cliques, Clique[F, C]{Conditional: res.Conditional, Parent: parent, cached: res.Cached})
		t.removed = append(t.removed, false)
		t.live++
		for _, k := range res.Conditional.Frontals() {
			if _, dup := t.index[k]; dup {
				return fmt.Errorf("%w: key %s frontal twice", ErrMalformedCliques, core.DefaultKeyFormatter(k))
			}
			t.index[k] = offset + i
		}
	}
	for i := range results {
		j := offset + i
		if p := t.cliques[j].Parent; p == -1 {
			t.roots = append(t.roots, j)
		} else {
			t.cliques[p].Children = append(t.cliques[p].Children, j)
		}
	}

	return nil
}

// NumCliques reports the number of live cliques.
func (t *Tree[F, C]) NumCliques() int { return t.live }

// Roots returns a copy of the live root positions.
func (t *Tree[F, C]) Roots() []int {
	out := make([]int, len(t.roots))
	copy(out, t.roots)

	return out
}

// Clique returns the clique at arena position i. Out-of-range or removed
// positions panic.
func (t *Tree[F, C]) Clique(i int) *Clique[F, C] {
	if i < 0 || i >= len(t.cliques) {
		panic(fmt.Sprintf("bayestree: clique position %d out of range [0,%d)", i, len(t.cliques)))
	}
	if t.removed[i] {
		panic(fmt.Sprintf("bayestree: clique %d was removed", i))
	}

	return &t.cliques[i]
}

// Keys returns the sorted frontal keys of all live cliques, which in a
// Bayes tree is every variable exactly once.
func (t *Tree[F, C]) Keys() []core.Key {
	out := make([]core.Key, 0, len(t.index))
	for k := range t.index {
		out = append(out, k)
	}

	return core.SortKeys(out)
}

// CliqueOf returns the arena position of the clique where k is frontal.
func (t *Tree[F, C]) CliqueOf(k core.Key) (int, error) {
	i, ok := t.index[k]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKey, core.DefaultKeyFormatter(k))
	}

	return i, nil
}

// Validate checks the arena invariants on live cliques: parent links are
// live, symmetric and acyclic, every clique with no parent is listed as a
// root, separators are contained in the parent's scope and the frontal
// index matches the cliques. Useful in tests and after manual surgery.
func (t *Tree[F, C]) Validate() error {
	nRoots := 0
	for i := range t.cliques {
		if t.removed[i] {
			continue
		}
		c := &t.cliques[i]
		for _, k := range c.Conditional.Frontals() {
			if at, ok := t.index[k]; !ok || at != i {
				return fmt.Errorf("bayestree: key %s of clique %d indexed elsewhere", core.DefaultKeyFormatter(k), i)
			}
		}
		for _, ch := range c.Children {
			if ch < 0 || ch >= len(t.cliques) || t.removed[ch] || t.cliques[ch].Parent != i {
				return fmt.Errorf("bayestree: clique %d lists broken child %d", i, ch)
			}
		}
		if c.Parent == -1 {
			if !t.isRoot(i) {
				return fmt.Errorf("bayestree: clique %d is detached", i)
			}
			nRoots++
			continue
		}
		if c.Parent < 0 || c.Parent >= len(t.cliques) || t.removed[c.Parent] {
			return fmt.Errorf("bayestree: clique %d has dead parent %d", i, c.Parent)
		}
		if !containsChild(t.cliques[c.Parent].Children, i) {
			return fmt.Errorf("bayestree: clique %d missing from parent %d", i, c.Parent)
		}
		scope := make(map[core.Key]struct{})
		for _, k := range t.cliques[c.Parent].Conditional.Keys() {
			scope[k] = struct{}{}
		}
		for _, k := range c.Conditional.Parents() {
			if _, ok := scope[k]; !ok {
				return fmt.Errorf("bayestree: separator key %s of clique %d outside parent %d", core.DefaultKeyFormatter(k), i, c.Parent)
			}
		}
		steps := 0
		for p := i; p != -1; p = t.cliques[p].Parent {
			if steps++; steps > t.live {
				return fmt.Errorf("bayestree: parent cycle through clique %d", i)
			}
		}
	}
	if nRoots != len(t.roots) {
		return fmt.Errorf("bayestree: %d parentless cliques but %d roots", nRoots, len(t.roots))
	}
	if len(t.index) != t.numFrontals() {
		return fmt.Errorf("bayestree: index holds %d keys, cliques hold %d frontals", len(t.index), t.numFrontals())
	}

	return nil
}

func (t *Tree[F, C]) isRoot(i int) bool {
	for _, r := range t.roots {
		if r == i {
			return true
		}
	}

	return false
}

func (t *Tree[F, C]) numFrontals() int {
	n := 0
	for i := range t.cliques {
		if !t.removed[i] {
			n += t.cliques[i].Conditional.NumFrontals()
		}
	}

	return n
}

func containsChild(children []int, i int) bool {
	for _, ch := range children {
		if ch == i {
			return true
		}
	}

	return false
}
