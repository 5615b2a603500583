package render

import (
	"context"
	"slices"
	"sync"
)

// Slot is the displayed state of one array element or tree node.
type Slot struct {
	Value     int   `json:"value"`
	Transient State `json:"transient,omitempty"`
	Marked    State `json:"marked,omitempty"`
}

// State returns the state that should be shown: the transient highlight if
// any, otherwise the persistent mark.
func (s Slot) State() State {
	if s.Transient != StateNone {
		return s.Transient
	}
	return s.Marked
}

// Board is a materialised view of every scope, built by applying events.
// It is safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	arrays   map[Scope][]Slot
	cells    map[Cell]State
	nodes    map[int]*Slot
	order    []int
	items    map[Scope][]int
	messages map[Scope]string
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		arrays:   make(map[Scope][]Slot),
		cells:    make(map[Cell]State),
		nodes:    make(map[int]*Slot),
		items:    make(map[Scope][]int),
		messages: make(map[Scope]string),
	}
}

// Emit applies ev to the board.
func (b *Board) Emit(_ context.Context, ev Event) error {
	b.Apply(ev)
	return nil
}

// Apply mutates the view according to ev. Indices outside the current
// structure are ignored, like lookups of elements that do not exist.
func (b *Board) Apply(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ev.Kind == KindOutput {
		b.messages[ev.Scope] = ev.Text
		return
	}
	if ev.Kind == KindItems {
		b.items[ev.Scope] = slices.Clone(ev.Values)
		return
	}

	switch ev.Scope {
	case ScopeGrid:
		b.applyGrid(ev)
	case ScopeTree:
		b.applyTree(ev)
	default:
		b.applyArray(ev)
	}
}

func (b *Board) applyArray(ev Event) {
	if ev.Kind == KindReset {
		slots := make([]Slot, len(ev.Values))
		for i, v := range ev.Values {
			slots[i] = Slot{Value: v}
		}
		b.arrays[ev.Scope] = slots
		return
	}

	slots := b.arrays[ev.Scope]
	for n, i := range ev.Indices {
		if i < 0 || i >= len(slots) {
			continue
		}
		switch ev.Kind {
		case KindHighlight:
			slots[i].Transient = ev.State
		case KindClear:
			slots[i].Transient = StateNone
		case KindUpdate:
			if n < len(ev.Values) {
				slots[i].Value = ev.Values[n]
			}
		case KindMark:
			slots[i].Marked = ev.State
		}
	}
}

func (b *Board) applyGrid(ev Event) {
	switch ev.Kind {
	case KindReset:
		clear(b.cells)
		for _, c := range ev.Cells {
			b.cells[c] = StateWall
		}
	case KindMark, KindHighlight:
		for _, c := range ev.Cells {
			b.cells[c] = ev.State
		}
	case KindClear:
		for _, c := range ev.Cells {
			delete(b.cells, c)
		}
	}
}

func (b *Board) applyTree(ev Event) {
	if ev.Kind == KindReset {
		clear(b.nodes)
		b.order = slices.Clone(ev.Values)
		for _, v := range ev.Values {
			b.nodes[v] = &Slot{Value: v}
		}
		return
	}
	for _, v := range ev.Values {
		n, ok := b.nodes[v]
		if !ok {
			continue
		}
		switch ev.Kind {
		case KindHighlight:
			n.Transient = ev.State
		case KindClear:
			n.Transient = StateNone
		case KindMark:
			n.Marked = ev.State
		}
	}
}

// Array returns a copy of the slots of an array scope.
func (b *Board) Array(scope Scope) []Slot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.arrays[scope])
}

// Values returns the current values of an array scope.
func (b *Board) Values(scope Scope) []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	slots := b.arrays[scope]
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.Value
	}
	return out
}

// CellState returns the state of a grid cell.
func (b *Board) CellState(c Cell) State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cells[c]
}

// CellsIn returns every grid cell currently in the given state.
func (b *Board) CellsIn(state State) []Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Cell
	for c, s := range b.cells {
		if s == state {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(x, y Cell) int {
		if x.Row != y.Row {
			return x.Row - y.Row
		}
		return x.Col - y.Col
	})
	return out
}

// Node returns the displayed state of the tree node holding value.
func (b *Board) Node(value int) (Slot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.nodes[value]
	if !ok {
		return Slot{}, false
	}
	return *n, true
}

// Nodes returns the tree node values in the order of the last reset.
func (b *Board) Nodes() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.order)
}

// NodeStates returns the displayed state of every highlighted tree node.
func (b *Board) NodeStates() map[int]State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	states := make(map[int]State)
	for v, n := range b.nodes {
		if st := n.State(); st != StateNone {
			states[v] = st
		}
	}
	return states
}

// Items returns the contents of a container scope.
func (b *Board) Items(scope Scope) []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.items[scope])
}

// Message returns the last output text of a scope.
func (b *Board) Message(scope Scope) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.messages[scope]
}

var _ Sink = (*Board)(nil)
