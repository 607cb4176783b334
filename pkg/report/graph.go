package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// ToDOT converts res to a Graphviz digraph: one box per project, one folder
// per manifest and one ellipse per service labeled "name: tag".
func ToDOT(res *collector.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph services {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	for _, proj := range res.ProjectNames() {
		manifests := res.Projects[proj]
		fmt.Fprintf(&buf, "  %q [shape=box, fillcolor=\"#dbeafe\"];\n", proj)
		for _, key := range manifests.Keys() {
			mid := proj + "/" + key
			fmt.Fprintf(&buf, "  %q [label=%q, shape=folder];\n", mid, key)
			fmt.Fprintf(&buf, "  %q -> %q;\n", proj, mid)

			services := manifests[key]
			for _, svc := range services.Names() {
				sid := mid + "/" + svc
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", sid, svc+": "+services[svc])
				fmt.Fprintf(&buf, "  %q -> %q;\n", mid, sid)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes ToDOT(res) to w.
func WriteDOT(res *collector.Result, w io.Writer) error {
	_, err := io.WriteString(w, ToDOT(res))
	return err
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSVG renders res as SVG and writes it to w.
func WriteSVG(ctx context.Context, res *collector.Result, w io.Writer) error {
	svg, err := RenderSVG(ctx, ToDOT(res))
	if err != nil {
		return err
	}
	_, err = w.Write(svg)
	return err
}
