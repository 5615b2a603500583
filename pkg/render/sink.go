package render

import (
	"context"
	"encoding/json"
	"io"
	"sync"
)

// Sink receives renderer events. Emit is called from the run's single
// logical thread; implementations shared between runs must be safe for
// concurrent use.
type Sink interface {
	Emit(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event) error

// Emit calls f(ctx, ev).
func (f SinkFunc) Emit(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) error { return nil })

// Multi fans an event out to several sinks, stopping at the first error.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, ev Event) error {
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Emit(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

// Recorder keeps every emitted event in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends ev.
func (r *Recorder) Emit(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Filter returns the recorded events matching kind (and state, if non-empty).
func (r *Recorder) Filter(kind Kind, state State) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Kind == kind && (state == StateNone || ev.State == state) {
			out = append(out, ev)
		}
	}
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// JSONLines writes each event as one JSON document per line.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines creates a JSON lines sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

// Emit encodes ev.
func (j *JSONLines) Emit(_ context.Context, ev Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Encode(ev)
}

var (
	_ Sink = (*Recorder)(nil)
	_ Sink = (*JSONLines)(nil)
)
