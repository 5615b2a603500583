// Package linear holds the stack, queue and list containers. They are
// unbounded, not safe for concurrent use, and operations on an empty
// container are no-ops.
package linear

import "slices"

// Stack is a LIFO sequence; Items lists it bottom first.
type Stack struct {
	items []int
}

// Push adds v on top.
func (s *Stack) Push(v int) { s.items = append(s.items, v) }

// Pop removes and returns the top value.
func (s *Stack) Pop() (int, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (int, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack) Clear()       { s.items = nil }
func (s *Stack) Len() int     { return len(s.items) }
func (s *Stack) Items() []int { return slices.Clone(s.items) }

// Queue is a FIFO sequence; Items lists it front first.
type Queue struct {
	items []int
}

// Enqueue adds v at the back.
func (q *Queue) Enqueue(v int) { q.items = append(q.items, v) }

// Dequeue removes and returns the front value.
func (q *Queue) Dequeue() (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

func (q *Queue) Clear()       { q.items = nil }
func (q *Queue) Len() int     { return len(q.items) }
func (q *Queue) Items() []int { return slices.Clone(q.items) }

// List is an ordered sequence with insertion at the tail and deletion by
// value.
type List struct {
	items []int
}

// Insert appends v.
func (l *List) Insert(v int) { l.items = append(l.items, v) }

// Delete removes the first occurrence of v and reports whether one existed.
func (l *List) Delete(v int) bool {
	i := slices.Index(l.items, v)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Contains reports whether v is in the list.
func (l *List) Contains(v int) bool { return slices.Contains(l.items, v) }

func (l *List) Clear()       { l.items = nil }
func (l *List) Len() int     { return len(l.items) }
func (l *List) Items() []int { return slices.Clone(l.items) }
