package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds each module's position to its label and each wire's
	// length to its edge.
	Detailed bool
}

// palette cycles through string colors.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

// ToDOT converts a wiring result to Graphviz DOT. Every string is a cluster
// and every consecutive module pair within a string is one edge.
func ToDOT(res *wiring.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph wiring {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("%s, %d strings, %.3f m", res.Strategy, len(res.Strings), res.Total))
	buf.WriteString("\n")

	for _, s := range res.Strings {
		color := palette[s.Index%len(palette)]
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", s.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("string %d (%.3f m)", s.Index, s.Distance))
		fmt.Fprintf(&buf, "    color=%q;\n", color)
		for _, m := range s.Modules {
			label := m.ID()
			if opts.Detailed {
				label = fmt.Sprintf("%s\n(%.2f, %.2f)", label, m.Position.X, m.Position.Y)
			}
			fmt.Fprintf(&buf, "    %q [label=%q];\n", m.ID(), label)
		}
		for i := 1; i < len(s.Modules); i++ {
			from, to := s.Modules[i-1], s.Modules[i]
			attrs := fmt.Sprintf("color=%q", color)
			if opts.Detailed {
				attrs += fmt.Sprintf(", label=\"%.3f\"", from.Center().Distance2D(to.Center()))
			}
			fmt.Fprintf(&buf, "    %q -> %q [%s];\n", from.ID(), to.ID(), attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}
