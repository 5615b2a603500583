package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/algoviz/pkg/render"
)

// DOTOptions configures DOT output.
type DOTOptions struct {
	// States colours nodes by value, typically taken from a render.Board.
	States map[int]render.State
}

// ToDOT converts the tree to Graphviz DOT. A node with a single child gets
// an invisible sibling so left and right children stay on their side.
func ToDOT(t *Tree, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph BST {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#4A90D9\", fontcolor=white, fontsize=14, width=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#9aa0a6\", penwidth=2];\n")
	buf.WriteString("\n")

	for n := range Traverse(t.Root, PreOrder) {
		attrs := fmt.Sprintf("label=\"%d\"", n.Value)
		if st := opts.States[n.Value]; st != render.StateNone {
			attrs += fmt.Sprintf(", fillcolor=%q", render.Fill(st))
		}
		fmt.Fprintf(&buf, "  n%s [%s];\n", nodeID(n.Value), attrs)
	}

	buf.WriteString("\n")
	for n := range Traverse(t.Root, PreOrder) {
		if n.Left == nil && n.Right == nil {
			continue
		}
		writeChild(&buf, n, n.Left, "l")
		writeChild(&buf, n, n.Right, "r")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeChild(buf *bytes.Buffer, parent, child *Node, side string) {
	if child != nil {
		fmt.Fprintf(buf, "  n%s -> n%s;\n", nodeID(parent.Value), nodeID(child.Value))
		return
	}
	ghost := fmt.Sprintf("g%s%s", side, nodeID(parent.Value))
	fmt.Fprintf(buf, "  %s [label=\"\", style=invis];\n", ghost)
	fmt.Fprintf(buf, "  n%s -> %s [style=invis];\n", nodeID(parent.Value), ghost)
}

// nodeID makes negative values usable as DOT identifiers.
func nodeID(v int) string {
	if v < 0 {
		return "m" + strconv.Itoa(-v)
	}
	return strconv.Itoa(v)
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG.
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

// RenderGraphviz renders the tree through Graphviz.
func RenderGraphviz(ctx context.Context, t *Tree, opts DOTOptions) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(t, opts))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with one sized
// from its viewBox.
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
