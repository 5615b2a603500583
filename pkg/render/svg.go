package render

import (
	"bytes"
	"fmt"
)

const svgStyle = `
    text { font-family: sans-serif; font-size: 11px; text-anchor: middle; }
    .tree-text { font-size: 14px; dominant-baseline: middle; fill: #fff; }
    .tree-edge { stroke: #9aa0a6; stroke-width: 2; }
    .grid-cell { stroke: #dadce0; stroke-width: 1; }`

const (
	arrayFrameWidth = 800.0
	arrayGap        = 2.0
	minBarWidth     = 8.0
	labelMaxBars    = 50
	gridCellSize    = 20.0
	treeNodeRadius  = 20.0
	treeFrameWidth  = 800.0
	itemBoxSize     = 40.0
)

// ShapeNode is one positioned tree node, as computed by the tree layout.
type ShapeNode struct {
	Value     int
	X, Y      float64
	HasParent bool
	ParentX   float64
	ParentY   float64
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gridSize   int
	start, end *Cell
	shape      []ShapeNode
}

// WithGrid sets the grid dimension and the fixed start/end cells.
func WithGrid(size int, start, end Cell) SVGOption {
	return func(r *svgRenderer) {
		r.gridSize = size
		r.start, r.end = &start, &end
	}
}

// WithTreeShape supplies node positions for the tree scope.
func WithTreeShape(shape []ShapeNode) SVGOption {
	return func(r *svgRenderer) { r.shape = shape }
}

// RenderSVG renders a snapshot of one scope of the board.
func RenderSVG(b *Board, scope Scope, opts ...SVGOption) []byte {
	r := svgRenderer{gridSize: 25}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	switch scope {
	case ScopeGrid:
		r.renderGrid(&buf, b)
	case ScopeTree:
		r.renderTree(&buf, b)
	case ScopeStack, ScopeQueue, ScopeList:
		renderItems(&buf, b.Items(scope), scope == ScopeList)
	default:
		renderBars(&buf, b.Array(scope))
	}
	return buf.Bytes()
}

func openSVG(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", svgStyle)
}

func closeSVG(buf *bytes.Buffer) {
	buf.WriteString("</svg>\n")
}

func renderBars(buf *bytes.Buffer, slots []Slot) {
	n := len(slots)
	barWidth := minBarWidth
	if n > 0 {
		barWidth = max(arrayFrameWidth/float64(n)-arrayGap, minBarWidth)
	}
	maxValue := 0
	for _, s := range slots {
		maxValue = max(maxValue, s.Value)
	}
	height := float64(maxValue) + 20
	width := max(float64(n)*(barWidth+arrayGap), barWidth)

	openSVG(buf, width, height)
	for i, s := range slots {
		x := float64(i) * (barWidth + arrayGap)
		y := height - float64(s.Value)
		fmt.Fprintf(buf, `  <rect class="array-bar" data-index="%d" x="%.1f" y="%.1f" width="%.1f" height="%d" fill="%s"/>`+"\n",
			i, x, y, barWidth, max(s.Value, 0), Fill(s.State()))
		if n <= labelMaxBars {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f">%d</text>`+"\n", x+barWidth/2, y-4, s.Value)
		}
	}
	closeSVG(buf)
}

func (r *svgRenderer) renderGrid(buf *bytes.Buffer, b *Board) {
	side := float64(r.gridSize) * gridCellSize
	openSVG(buf, side, side)
	for row := 0; row < r.gridSize; row++ {
		for col := 0; col < r.gridSize; col++ {
			c := Cell{Row: row, Col: col}
			state := b.CellState(c)
			switch {
			case r.start != nil && c == *r.start:
				state = StateStart
			case r.end != nil && c == *r.end:
				state = StateEnd
			}
			fill := "#ffffff"
			if state != StateNone {
				fill = Fill(state)
			}
			fmt.Fprintf(buf, `  <rect class="grid-cell" data-row="%d" data-col="%d" x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
				row, col, float64(col)*gridCellSize, float64(row)*gridCellSize, gridCellSize, gridCellSize, fill)
		}
	}
	closeSVG(buf)
}

func (r *svgRenderer) renderTree(buf *bytes.Buffer, b *Board) {
	height := 100.0
	for _, n := range r.shape {
		height = max(height, n.Y+treeNodeRadius+30)
	}
	openSVG(buf, treeFrameWidth, height)
	for _, n := range r.shape {
		if n.HasParent {
			fmt.Fprintf(buf, `  <line class="tree-edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", n.ParentX, n.ParentY, n.X, n.Y)
		}
	}
	for _, n := range r.shape {
		slot, _ := b.Node(n.Value)
		fmt.Fprintf(buf, `  <circle class="tree-node" data-value="%d" cx="%.1f" cy="%.1f" r="%.0f" fill="%s"/>`+"\n",
			n.Value, n.X, n.Y, treeNodeRadius, Fill(slot.State()))
		fmt.Fprintf(buf, `  <text class="tree-text" x="%.1f" y="%.1f">%d</text>`+"\n", n.X, n.Y, n.Value)
	}
	if msg := b.Message(ScopeTree); msg != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f">%s</text>`+"\n", treeFrameWidth/2, height-10, escape(msg))
	}
	closeSVG(buf)
}

func renderItems(buf *bytes.Buffer, items []int, arrows bool) {
	step := itemBoxSize + 10
	if arrows {
		step += 20
	}
	width := max(float64(len(items))*step, step)
	openSVG(buf, width, itemBoxSize+20)
	for i, v := range items {
		x := float64(i)*step + 5
		fmt.Fprintf(buf, `  <rect x="%.1f" y="10" width="%.0f" height="%.0f" rx="4" fill="%s"/>`+"\n", x, itemBoxSize, itemBoxSize, Fill(StateNone))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f">%d</text>`+"\n", x+itemBoxSize/2, 10+itemBoxSize/2+4, v)
		if arrows && i < len(items)-1 {
			ax := x + itemBoxSize
			fmt.Fprintf(buf, `  <line class="tree-edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", ax+2, 10+itemBoxSize/2, ax+step-itemBoxSize-2, 10+itemBoxSize/2)
		}
	}
	closeSVG(buf)
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
