// Package tree provides the binary search tree behind the traversal
// animations, its four traversal orders, a fixed-geometry layout and a
// Graphviz rendering.
//
// Traversals are driven by an explicit work-list rather than recursion, so
// a traversal can be consumed one node at a time as an [iter.Seq] and
// abandoned at any point.
package tree

// Node is a tree node. Left holds smaller values, Right larger ones.
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

// Tree is a binary search tree of distinct integers.
type Tree struct {
	Root *Node
	size int
}

// SampleValues are inserted, in order, after the root 50 by Sample.
var SampleValues = []int{30, 70, 20, 40, 60, 80, 10, 25, 35, 45}

// SampleRoot is the root value of the sample tree.
const SampleRoot = 50

// New returns an empty tree.
func New() *Tree { return &Tree{} }

// Sample returns the standard eleven-node demonstration tree.
func Sample() *Tree {
	t := New()
	t.Insert(SampleRoot)
	for _, v := range SampleValues {
		t.Insert(v)
	}
	return t
}

// Insert adds v at its ordered position and reports whether it was added.
// Values already present are ignored.
func (t *Tree) Insert(v int) bool {
	link := &t.Root
	for *link != nil {
		switch n := *link; {
		case v < n.Value:
			link = &n.Left
		case v > n.Value:
			link = &n.Right
		default:
			return false
		}
	}
	*link = &Node{Value: v}
	t.size++
	return true
}

// Contains reports whether v is in the tree.
func (t *Tree) Contains(v int) bool {
	for n := t.Root; n != nil; {
		switch {
		case v < n.Value:
			n = n.Left
		case v > n.Value:
			n = n.Right
		default:
			return true
		}
	}
	return false
}

// Clear drops every node.
func (t *Tree) Clear() {
	t.Root = nil
	t.size = 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return t.size }

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool { return t.Root == nil }

// Height returns the number of levels; an empty tree has height 0.
func (t *Tree) Height() int {
	h := 0
	level := []*Node{}
	if t.Root != nil {
		level = append(level, t.Root)
	}
	for len(level) > 0 {
		h++
		var next []*Node
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level = next
	}
	return h
}
