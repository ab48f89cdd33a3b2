package core

import (
	"fmt"
	"io"
	"strings"
)

// BayesNet holds conditionals in elimination order: the conditional at
// position i was produced when its frontal variables were eliminated, and
// its parents were all eliminated later. Back-substitution therefore walks
// the net in reverse.
type BayesNet[C Conditional] struct {
	conds []C
}

// NewBayesNet builds a net over the given conditionals, in order.
func NewBayesNet[C Conditional](conds ...C) *BayesNet[C] {
	bn := &BayesNet[C]{conds: make([]C, 0, len(conds))}
	bn.conds = append(bn.conds, conds...)
	return bn
}

// Push appends a conditional.
func (bn *BayesNet[C]) Push(c C) { bn.conds = append(bn.conds, c) }

// Len reports the number of conditionals.
func (bn *BayesNet[C]) Len() int { return len(bn.conds) }

// At returns the conditional at position i; out-of-range positions panic.
func (bn *BayesNet[C]) At(i int) C {
	if i < 0 || i >= len(bn.conds) {
		panic(fmt.Sprintf("core: conditional position %d out of range [0,%d)", i, len(bn.conds)))
	}
	return bn.conds[i]
}

// Conditionals returns a copy of the conditional slice.
func (bn *BayesNet[C]) Conditionals() []C {
	out := make([]C, len(bn.conds))
	copy(out, bn.conds)
	return out
}

// Frontals returns every frontal key in elimination order.
func (bn *BayesNet[C]) Frontals() []Key {
	out := make([]Key, 0, len(bn.conds))
	for _, c := range bn.conds {
		out = append(out, c.Frontals()...)
	}
	return out
}

// Keys returns the sorted union of frontal and parent keys.
func (bn *BayesNet[C]) Keys() []Key {
	seen := make(map[Key]struct{})
	out := make([]Key, 0, len(bn.conds))
	for _, c := range bn.conds {
		for _, k := range c.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				out = append(out, k)
			}
		}
	}
	return SortKeys(out)
}

// WriteDOT renders the conditional dependency structure as a GraphViz
// digraph: one node per key, one edge from every parent to every frontal.
// format may be nil for DefaultKeyFormatter.
func (bn *BayesNet[C]) WriteDOT(w io.Writer, format KeyFormatter) error {
	if format == nil {
		format = DefaultKeyFormatter
	}
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("  size=\"5,5\";\n\n")
	declared := make(map[Key]struct{})
	declare := func(k Key) {
		if _, ok := declared[k]; ok {
			return
		}
		declared[k] = struct{}{}
		fmt.Fprintf(&b, "  var%d[label=\"%s\"];\n", uint64(k), format(k))
	}
	for _, c := range bn.conds {
		for _, k := range c.Keys() {
			declare(k)
		}
	}
	b.WriteString("\n")
	for _, c := range bn.conds {
		for _, f := range c.Frontals() {
			for _, p := range c.Parents() {
				fmt.Fprintf(&b, "  var%d->var%d\n", uint64(p), uint64(f))
			}
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// DOT renders WriteDOT into a string.
func (bn *BayesNet[C]) DOT(format KeyFormatter) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = bn.WriteDOT(&b, format)
	return b.String()
}
