package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pscdeps/pkg/dag"
	"github.com/matzehuels/pscdeps/pkg/query"
)

// ToDOT converts the dependents of root to Graphviz DOT. Only root and the
// given rows are drawn, with the dependency edges among them pointing from
// a package to its dependents. Transitive dependents get dashed outlines.
func ToDOT(g *dag.Graph, root string, rows []query.Row) string {
	ids := make([]string, 0, len(rows)+1)
	ids = append(ids, root)
	transitive := make(map[string]bool, len(rows))
	urls := make(map[string]string, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Name)
		transitive[r.Name] = r.Transitive
		urls[r.Name] = displayURL(r.URL)
	}
	sub := g.Subgraph(ids)

	var buf bytes.Buffer
	buf.WriteString("digraph dependents {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [penwidth=2, fillcolor=lightyellow];\n", root)
	for _, r := range rows {
		attrs := fmt.Sprintf("tooltip=%q", urls[r.Name])
		if urls[r.Name] != "" {
			attrs += fmt.Sprintf(", URL=%q", urls[r.Name])
		}
		if transitive[r.Name] {
			attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", r.Name, attrs)
	}

	buf.WriteString("\n")
	for _, e := range sub.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph and returns it as SVG.
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the drawing scales from the
// origin regardless of the point-based size Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
