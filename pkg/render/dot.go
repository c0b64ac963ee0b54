package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/arborpm/arbor/pkg/manager"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed includes branch, pin, and version constraint in node labels.
	// When false, only the dependency name is shown.
	Detailed bool
}

// ToDOT converts a dependency tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or passed
// to external Graphviz tooling.
//
// The root node is rendered with a grey fill to distinguish the project
// itself from its dependencies. Edges point from each dependent to the
// dependencies it declares.
func ToDOT(root *manager.TreeNode, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled\", fillcolor=lightgrey];\n", root.Dir, root.Name)
	writeNodes(&buf, root, opts)

	buf.WriteString("\n")
	writeEdges(&buf, root)

	buf.WriteString("}\n")
	return buf.String()
}

// Nodes are keyed by directory rather than name so the same dependency
// appearing at different depths stays distinguishable.
func writeNodes(buf *bytes.Buffer, node *manager.TreeNode, opts Options) {
	for _, child := range node.Children {
		fmt.Fprintf(buf, "  %q [label=%q];\n", child.Dir, fmtLabel(child, opts.Detailed))
		writeNodes(buf, child, opts)
	}
}

func writeEdges(buf *bytes.Buffer, node *manager.TreeNode) {
	for _, child := range node.Children {
		fmt.Fprintf(buf, "  %q -> %q;\n", node.Dir, child.Dir)
		writeEdges(buf, child)
	}
}

func fmtLabel(node *manager.TreeNode, detailed bool) string {
	if !detailed {
		return node.Name
	}

	parts := []string{node.Name}
	if node.Dep.Branch != "" {
		parts = append(parts, "branch: "+node.Dep.Branch)
	}
	if node.Dep.Version != "" {
		parts = append(parts, "version: "+node.Dep.Version)
	}
	if node.Dep.Pin != "" {
		parts = append(parts, "pin: "+shortPin(node.Dep.Pin))
	}
	return strings.Join(parts, "\n")
}

func shortPin(pin string) string {
	if len(pin) > 12 {
		return pin[:12]
	}
	return pin
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
