package render

import "fmt"

// Scope names the display region an event targets.
type Scope string

// Display regions, one per sub-engine (three for the linear structures).
const (
	ScopeSort   Scope = "sort"
	ScopeSearch Scope = "search"
	ScopeGrid   Scope = "grid"
	ScopeTree   Scope = "tree"
	ScopeStack  Scope = "stack"
	ScopeQueue  Scope = "queue"
	ScopeList   Scope = "list"
)

// Kind is the operation an event asks the renderer to perform.
type Kind string

const (
	// KindReset replaces the structure of a scope wholesale.
	KindReset Kind = "reset"
	// KindHighlight sets a transient state (comparing, swapping, current).
	KindHighlight Kind = "highlight"
	// KindClear removes transient states.
	KindClear Kind = "clear"
	// KindUpdate writes new values at the given indices.
	KindUpdate Kind = "update"
	// KindMark sets a persistent state (sorted, checked, found, visited, path, wall).
	KindMark Kind = "mark"
	// KindOutput replaces the scope's message text.
	KindOutput Kind = "output"
	// KindItems replaces a container's contents.
	KindItems Kind = "items"
)

// State is a visual state class.
type State string

// Visual states.
const (
	StateNone      State = ""
	StateComparing State = "comparing"
	StateSwapping  State = "swapping"
	StateSorted    State = "sorted"
	StateCurrent   State = "current"
	StateChecked   State = "checked"
	StateFound     State = "found"
	StateVisited   State = "visited"
	StatePath      State = "path"
	StateWall      State = "wall"
	StateStart     State = "start"
	StateEnd       State = "end"
)

// Cell addresses a grid cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Event is one renderer instruction.
//
// Array scopes (sort, search) address elements by Indices. The grid scope
// uses Cells. The tree scope addresses nodes by value through Values, which
// is unambiguous because the tree holds no duplicates.
type Event struct {
	Scope   Scope  `json:"scope"`
	Kind    Kind   `json:"kind"`
	Indices []int  `json:"indices,omitempty"`
	Values  []int  `json:"values,omitempty"`
	Cells   []Cell `json:"cells,omitempty"`
	State   State  `json:"state,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Reset snapshots an array scope, or lists the nodes of the tree scope.
func Reset(scope Scope, values []int) Event {
	return Event{Scope: scope, Kind: KindReset, Values: clone(values)}
}

// ResetGrid clears every cell state and re-applies the given walls.
func ResetGrid(walls []Cell) Event {
	return Event{Scope: ScopeGrid, Kind: KindReset, Cells: walls, State: StateWall}
}

// Highlight sets a transient state on array elements.
func Highlight(scope Scope, state State, indices ...int) Event {
	return Event{Scope: scope, Kind: KindHighlight, Indices: indices, State: state}
}

// Clear removes transient states from array elements.
func Clear(scope Scope, indices ...int) Event {
	return Event{Scope: scope, Kind: KindClear, Indices: indices}
}

// Update writes values at indices; values[i] belongs to indices[i].
func Update(scope Scope, indices, values []int) Event {
	return Event{Scope: scope, Kind: KindUpdate, Indices: indices, Values: values}
}

// Mark sets a persistent state on array elements.
func Mark(scope Scope, state State, indices ...int) Event {
	return Event{Scope: scope, Kind: KindMark, Indices: indices, State: state}
}

// MarkCells sets a persistent state on grid cells.
func MarkCells(state State, cells ...Cell) Event {
	return Event{Scope: ScopeGrid, Kind: KindMark, Cells: cells, State: state}
}

// ClearCells returns grid cells to the empty state.
func ClearCells(cells ...Cell) Event {
	return Event{Scope: ScopeGrid, Kind: KindClear, Cells: cells}
}

// HighlightNodes sets a transient state on tree nodes.
func HighlightNodes(state State, values ...int) Event {
	return Event{Scope: ScopeTree, Kind: KindHighlight, Values: values, State: state}
}

// ClearNodes removes transient states from tree nodes.
func ClearNodes(values ...int) Event {
	return Event{Scope: ScopeTree, Kind: KindClear, Values: values}
}

// MarkNodes sets a persistent state on tree nodes.
func MarkNodes(state State, values ...int) Event {
	return Event{Scope: ScopeTree, Kind: KindMark, Values: values, State: state}
}

// Output replaces a scope's message text.
func Output(scope Scope, text string) Event {
	return Event{Scope: scope, Kind: KindOutput, Text: text}
}

// Items replaces a container's contents.
func Items(scope Scope, values []int) Event {
	return Event{Scope: scope, Kind: KindItems, Values: clone(values)}
}

func clone(v []int) []int {
	if v == nil {
		return []int{}
	}
	out := make([]int, len(v))
	copy(out, v)
	return out
}
