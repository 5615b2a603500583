package cli

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/tree"
)

// barHeight is the number of terminal rows used for the tallest bar.
const barHeight = 12

// viewArray draws an array scope as vertical bars, one column per element.
func viewArray(b *render.Board, scope render.Scope) string {
	slots := b.Array(scope)
	if len(slots) == 0 {
		return StyleDim.Render("(empty)")
	}
	maxValue := 1
	for _, s := range slots {
		maxValue = max(maxValue, s.Value)
	}
	heights := make([]int, len(slots))
	for i, s := range slots {
		heights[i] = max(1, s.Value*barHeight/maxValue)
	}

	var sb strings.Builder
	for row := barHeight; row >= 1; row-- {
		for i, s := range slots {
			if heights[i] >= row {
				sb.WriteString(render.StateStyle(s.State()).Render("█"))
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	if len(slots) <= 20 {
		for i, s := range slots {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(render.StateStyle(s.State()).Render(strconv.Itoa(s.Value)))
		}
		sb.WriteString("\n")
	}
	if msg := b.Message(scope); msg != "" {
		sb.WriteString(StyleValue.Render(msg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// viewGrid draws the pathfinding grid with two characters per cell.
func viewGrid(b *render.Board, size int, start, end render.Cell) string {
	var sb strings.Builder
	for row := range size {
		for col := range size {
			c := render.Cell{Row: row, Col: col}
			switch c {
			case start:
				sb.WriteString(render.StateStyle(render.StateStart).Render("S "))
				continue
			case end:
				sb.WriteString(render.StateStyle(render.StateEnd).Render("E "))
				continue
			}
			switch st := b.CellState(c); st {
			case render.StateNone:
				sb.WriteString(StyleDim.Render("· "))
			case render.StateVisited:
				sb.WriteString(render.StateStyle(st).Render("░░"))
			default:
				sb.WriteString(render.StateStyle(st).Render("██"))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// treeColumns is the terminal width the tree layout is scaled into.
const treeColumns = 80

// viewTree places node values on one line per level, at columns scaled
// from the drawing layout.
func viewTree(b *render.Board, shape []render.ShapeNode) string {
	if len(shape) == 0 {
		return StyleDim.Render("(empty tree)") + "\n"
	}
	levels := map[int][]render.ShapeNode{}
	depth := 0
	for _, n := range shape {
		lvl := int((n.Y - tree.RootY) / tree.LevelHeight)
		levels[lvl] = append(levels[lvl], n)
		depth = max(depth, lvl)
	}

	var sb strings.Builder
	for lvl := 0; lvl <= depth; lvl++ {
		col := 0
		nodes := levels[lvl]
		slices.SortFunc(nodes, func(a, b render.ShapeNode) int { return cmp.Compare(a.X, b.X) })
		for _, n := range nodes {
			label := strconv.Itoa(n.Value)
			at := int(n.X/(2*tree.RootX)*treeColumns) - len(label)/2
			if at > col {
				sb.WriteString(strings.Repeat(" ", at-col))
				col = at
			} else if col > 0 {
				sb.WriteString(" ")
				col++
			}
			slot, _ := b.Node(n.Value)
			sb.WriteString(render.StateStyle(slot.State()).Render(label))
			col += len(label)
		}
		sb.WriteString("\n")
	}
	if msg := b.Message(render.ScopeTree); msg != "" {
		sb.WriteString("\n" + StyleValue.Render(msg) + "\n")
	}
	return sb.String()
}

var itemStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

// viewItems draws a container's contents as boxes; lists get arrows
// between them.
func viewItems(b *render.Board, scope render.Scope) string {
	items := b.Items(scope)
	if len(items) == 0 {
		return StyleDim.Render("(empty)")
	}
	boxes := make([]string, 0, 2*len(items))
	for i, v := range items {
		if i > 0 && scope == render.ScopeList {
			boxes = append(boxes, StyleDim.Render(" "+iconArrow+" "))
		}
		boxes = append(boxes, itemStyle.Render(strconv.Itoa(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
}
