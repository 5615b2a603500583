package tree

import "github.com/matzehuels/algoviz/pkg/render"

// Layout geometry: the root sits at (RootX, RootY); each child is offset
// horizontally by the parent's spacing, which halves per level, and
// vertically by LevelHeight.
const (
	RootX          = 400.0
	RootY          = 50.0
	InitialSpacing = 200.0
	LevelHeight    = 80.0
)

// Position is the centre of a drawn node.
type Position struct {
	X, Y float64
}

// Layout computes the position of every node.
func Layout(root *Node) map[*Node]Position {
	pos := make(map[*Node]Position)
	type item struct {
		n       *Node
		at      Position
		spacing float64
	}
	if root == nil {
		return pos
	}
	work := []item{{root, Position{RootX, RootY}, InitialSpacing}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		pos[it.n] = it.at
		if it.n.Left != nil {
			work = append(work, item{it.n.Left, Position{it.at.X - it.spacing, it.at.Y + LevelHeight}, it.spacing / 2})
		}
		if it.n.Right != nil {
			work = append(work, item{it.n.Right, Position{it.at.X + it.spacing, it.at.Y + LevelHeight}, it.spacing / 2})
		}
	}
	return pos
}

// Shape flattens the layout in preorder for drawing, recording each node's
// parent position so edges can be drawn.
func Shape(t *Tree) []render.ShapeNode {
	pos := Layout(t.Root)
	parent := make(map[*Node]*Node)
	var out []render.ShapeNode
	for n := range Traverse(t.Root, PreOrder) {
		if n.Left != nil {
			parent[n.Left] = n
		}
		if n.Right != nil {
			parent[n.Right] = n
		}
		p := pos[n]
		s := render.ShapeNode{Value: n.Value, X: p.X, Y: p.Y}
		if par, ok := parent[n]; ok {
			pp := pos[par]
			s.HasParent, s.ParentX, s.ParentY = true, pp.X, pp.Y
		}
		out = append(out, s)
	}
	return out
}
