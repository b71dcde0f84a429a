package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/stackview/pkg/constraint"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds priorities and identifiers to edge labels.
	Detailed bool

	// Hidden lists items drawn greyed out.
	Hidden []constraint.ElementID
}

// ToDOT converts the constraints of container to Graphviz DOT.
//
// Elements appear in order of first use, starting with the container.
// Non-required constraints are drawn dashed; spacers are drawn as dashed
// grey nodes.
func ToDOT(container constraint.ElementID, cs []constraint.Constraint, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	hidden := make(map[constraint.ElementID]bool, len(opts.Hidden))
	for _, id := range opts.Hidden {
		hidden[id] = true
	}

	nodes, unary := collectNodes(container, cs)
	for _, id := range nodes {
		label := fmtLabel(id, unary[id])
		attrs := fmtAttrs(id, container, label, hidden[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range cs {
		if !c.HasSecond() {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(c, opts.Detailed))}
		if c.Priority < constraint.Required {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.First, c.Second, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func collectNodes(container constraint.ElementID, cs []constraint.Constraint) ([]constraint.ElementID, map[constraint.ElementID][]string) {
	seen := map[constraint.ElementID]bool{container: true}
	nodes := []constraint.ElementID{container}
	unary := make(map[constraint.ElementID][]string)

	add := func(id constraint.ElementID) {
		if id != "" && !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	for _, c := range cs {
		add(c.First)
		if c.HasSecond() {
			add(c.Second)
			continue
		}
		unary[c.First] = append(unary[c.First], fmt.Sprintf("%s %s %g", c.FirstAttr, c.Relation, c.Constant))
	}
	return nodes, unary
}

func fmtLabel(id constraint.ElementID, unary []string) string {
	if len(unary) == 0 {
		return string(id)
	}
	return string(id) + "\n" + strings.Join(unary, "\n")
}

func fmtAttrs(id, container constraint.ElementID, label string, hidden bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case id == container:
		attrs = append(attrs, "peripheries=2", "fillcolor=\"#eef3ff\"")
	case constraint.IsGenerated(string(id)):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case hidden:
		attrs = append(attrs, "fontcolor=grey50", "color=grey50")
	}
	return attrs
}

func edgeLabel(c constraint.Constraint, detailed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", c.FirstAttr, c.Relation, c.SecondAttr)
	if c.Multiplier != 1 {
		fmt.Fprintf(&b, " * %g", c.Multiplier)
	}
	switch {
	case c.Constant > 0:
		fmt.Fprintf(&b, " + %g", c.Constant)
	case c.Constant < 0:
		fmt.Fprintf(&b, " - %g", -c.Constant)
	}
	if detailed {
		fmt.Fprintf(&b, "\n@%g %s", float64(c.Priority), c.ID)
	}
	return b.String()
}
