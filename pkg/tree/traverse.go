package tree

import (
	"iter"
	"strings"

	"github.com/matzehuels/algoviz/pkg/errors"
)

// Order is a traversal order.
type Order string

const (
	InOrder    Order = "inorder"
	PreOrder   Order = "preorder"
	PostOrder  Order = "postorder"
	LevelOrder Order = "levelorder"
)

// Orders returns every traversal order in menu order.
func Orders() []Order {
	return []Order{InOrder, PreOrder, PostOrder, LevelOrder}
}

// ParseOrder resolves a user-supplied traversal name.
func ParseOrder(name string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Orders() {
		if o == known {
			return o, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm, "unknown traversal %q", name)
}

// frame is a work-list entry. An unexpanded frame stands for the whole
// subtree; an expanded one for visiting the node itself.
type frame struct {
	node     *Node
	expanded bool
}

// Traverse yields the nodes under root in the given order.
func Traverse(root *Node, order Order) iter.Seq[*Node] {
	if order == LevelOrder {
		return levelOrder(root)
	}
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		work := []frame{{node: root}}
		for len(work) > 0 {
			f := work[len(work)-1]
			work = work[:len(work)-1]
			if f.expanded {
				if !yield(f.node) {
					return
				}
				continue
			}
			// Push in reverse so the first entry of the order is popped first.
			self := frame{node: f.node, expanded: true}
			switch order {
			case InOrder:
				work = pushChild(work, f.node.Right)
				work = append(work, self)
				work = pushChild(work, f.node.Left)
			case PreOrder:
				work = pushChild(work, f.node.Right)
				work = pushChild(work, f.node.Left)
				work = append(work, self)
			case PostOrder:
				work = append(work, self)
				work = pushChild(work, f.node.Right)
				work = pushChild(work, f.node.Left)
			}
		}
	}
}

func pushChild(work []frame, n *Node) []frame {
	if n == nil {
		return work
	}
	return append(work, frame{node: n})
}

func levelOrder(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		queue := []*Node{root}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if !yield(n) {
				return
			}
			if n.Left != nil {
				queue = append(queue, n.Left)
			}
			if n.Right != nil {
				queue = append(queue, n.Right)
			}
		}
	}
}

// Values returns the node values of the tree in the given order.
func (t *Tree) Values(order Order) []int {
	var out []int
	for n := range Traverse(t.Root, order) {
		out = append(out, n.Value)
	}
	return out
}
