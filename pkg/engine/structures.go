package engine

import (
	"context"
	"sync"

	"github.com/matzehuels/algoviz/pkg/linear"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Structures holds the stack, queue and list. Operations take effect
// immediately and re-render their container; there is no animation.
type Structures struct {
	mu    sync.Mutex
	sink  render.Sink
	stack linear.Stack
	queue linear.Queue
	list  linear.List
}

func newStructures(opts Options) *Structures {
	s := &Structures{sink: opts.Sink}
	ctx := context.Background()
	for _, scope := range []render.Scope{render.ScopeStack, render.ScopeQueue, render.ScopeList} {
		_ = s.sink.Emit(ctx, render.Items(scope, nil))
	}
	return s
}

func (s *Structures) show(ctx context.Context, scope render.Scope, items []int) error {
	return s.sink.Emit(ctx, render.Items(scope, items))
}

// Push adds v to the stack.
func (s *Structures) Push(ctx context.Context, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Push(v)
	return s.show(ctx, render.ScopeStack, s.stack.Items())
}

// Pop removes the top of the stack. Popping an empty stack does nothing.
func (s *Structures) Pop(ctx context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.stack.Pop()
	if !ok {
		return 0, false, nil
	}
	return v, true, s.show(ctx, render.ScopeStack, s.stack.Items())
}

// ClearStack empties the stack.
func (s *Structures) ClearStack(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Clear()
	return s.show(ctx, render.ScopeStack, nil)
}

// Enqueue adds v to the back of the queue.
func (s *Structures) Enqueue(ctx context.Context, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Enqueue(v)
	return s.show(ctx, render.ScopeQueue, s.queue.Items())
}

// Dequeue removes the front of the queue. Dequeuing an empty queue does
// nothing.
func (s *Structures) Dequeue(ctx context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.queue.Dequeue()
	if !ok {
		return 0, false, nil
	}
	return v, true, s.show(ctx, render.ScopeQueue, s.queue.Items())
}

// ClearQueue empties the queue.
func (s *Structures) ClearQueue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Clear()
	return s.show(ctx, render.ScopeQueue, nil)
}

// Insert appends v to the list.
func (s *Structures) Insert(ctx context.Context, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Insert(v)
	return s.show(ctx, render.ScopeList, s.list.Items())
}

// Delete removes the first occurrence of v from the list. Deleting a value
// that is not present does nothing.
func (s *Structures) Delete(ctx context.Context, v int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.list.Delete(v) {
		return false, nil
	}
	return true, s.show(ctx, render.ScopeList, s.list.Items())
}

// ClearList empties the list.
func (s *Structures) ClearList(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Clear()
	return s.show(ctx, render.ScopeList, nil)
}

// Stack returns the stack contents, bottom first.
func (s *Structures) Stack() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.Items()
}

// Queue returns the queue contents, front first.
func (s *Structures) Queue() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Items()
}

// List returns the list contents in order.
func (s *Structures) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Items()
}
