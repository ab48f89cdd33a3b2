package bayestree

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/factree/core"
)

// WriteDOT renders the live cliques as a GraphViz digraph: one node per
// clique labelled "frontals : separator", one edge per parent link.
// format may be nil for DefaultKeyFormatter.
func (t *Tree[F, C]) WriteDOT(w io.Writer, format core.KeyFormatter) error {
	if format == nil {
		format = core.DefaultKeyFormatter
	}
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("  size=\"5,5\";\n\n")
	for i := range t.cliques {
		if t.removed[i] {
			continue
		}
		cond := t.cliques[i].Conditional
		label := core.FormatKeys(cond.Frontals(), format)
		if parents := cond.Parents(); len(parents) > 0 {
			label += " : " + core.FormatKeys(parents, format)
		}
		fmt.Fprintf(&b, "  clique%d[label=\"%s\"];\n", i, label)
	}
	b.WriteString("\n")
	for i := range t.cliques {
		if t.removed[i] || t.cliques[i].Parent == -1 {
			continue
		}
		fmt.Fprintf(&b, "  clique%d->clique%d\n", t.cliques[i].Parent, i)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())

	return err
}

// DOT renders WriteDOT into a string.
func (t *Tree[F, C]) DOT(format core.KeyFormatter) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = t.WriteDOT(&b, format)

	return b.String()
}
