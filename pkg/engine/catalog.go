package engine

// Category groups algorithms by engine.
type Category string

const (
	CategorySorting Category = "sorting"
	CategorySearch  Category = "search"
	CategoryGraph   Category = "graph"
	CategoryTree    Category = "tree"
)

// AlgorithmInfo describes an algorithm for display.
type AlgorithmInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Space       string `json:"space"`
	Description string `json:"description"`
}

// Categories returns the categories in display order.
func Categories() []Category {
	return []Category{CategorySorting, CategorySearch, CategoryGraph, CategoryTree}
}

var catalog = map[Category][]AlgorithmInfo{
	CategorySorting: {
		{"bubble", "Bubble Sort", "O(n²)", "O(1)", "Compares adjacent elements and swaps them if they're in wrong order"},
		{"selection", "Selection Sort", "O(n²)", "O(1)", "Finds minimum element and places it at the beginning"},
		{"insertion", "Insertion Sort", "O(n²)", "O(1)", "Builds sorted array one element at a time"},
		{"merge", "Merge Sort", "O(n log n)", "O(n)", "Divide and conquer algorithm that splits array and merges sorted halves"},
		{"quick", "Quick Sort", "O(n log n)", "O(log n)", "Picks pivot element and partitions array around it"},
		{"heap", "Heap Sort", "O(n log n)", "O(1)", "Uses heap data structure to sort elements"},
	},
	CategorySearch: {
		{"linear", "Linear Search", "O(n)", "O(1)", "Searches each element sequentially until target is found"},
		{"binary", "Binary Search", "O(log n)", "O(1)", "Searches sorted array by repeatedly dividing search interval in half"},
	},
	CategoryGraph: {
		{"bfs", "Breadth-First Search", "O(V + E)", "O(V)", "Explores neighbors before going deeper, uses queue"},
		{"dfs", "Depth-First Search", "O(V + E)", "O(V)", "Explores as far as possible before backtracking, uses stack"},
		{"dijkstra", "Dijkstra's Algorithm", "O(V²)", "O(V)", "Finds shortest path in weighted graph"},
		{"astar", "A* Algorithm", "O(b^d)", "O(b^d)", "Uses heuristic to find optimal path faster than Dijkstra"},
	},
	CategoryTree: {
		{"inorder", "Inorder Traversal", "O(n)", "O(h)", "Left → Root → Right traversal"},
		{"preorder", "Preorder Traversal", "O(n)", "O(h)", "Root → Left → Right traversal"},
		{"postorder", "Postorder Traversal", "O(n)", "O(h)", "Left → Right → Root traversal"},
		{"levelorder", "Level Order Traversal", "O(n)", "O(w)", "Breadth-first traversal using queue"},
	},
}

// Catalog returns the algorithms of a category in menu order.
func Catalog(c Category) []AlgorithmInfo {
	return append([]AlgorithmInfo(nil), catalog[c]...)
}

// Lookup finds an algorithm by category and key.
func Lookup(c Category, key string) (AlgorithmInfo, bool) {
	for _, info := range catalog[c] {
		if info.Key == key {
			return info, true
		}
	}
	return AlgorithmInfo{}, false
}
