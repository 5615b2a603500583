package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

func newTestStore(ttl time.Duration) *Store {
	logger := log.New(io.Discard)
	return NewStore(ttl, func(sink render.Sink) *engine.Visualizer {
		return engine.New(engine.Options{Sink: sink, Clock: anim.Instant, Logger: logger, Seed: 1})
	}, logger)
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(time.Minute)
	defer s.Close()

	sess, err := s.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" || sess.Viz == nil {
		t.Fatalf("incomplete session %+v", sess)
	}
	if got := len(sess.Board.Values(render.ScopeSort)); got != 50 {
		t.Errorf("board shows %d sort values, want 50", got)
	}

	got, err := s.Get(ctx, sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("unknown id: %v", err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(time.Minute)
	defer s.Close()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, _ := s.Create(ctx)
	now = now.Add(45 * time.Second)
	fresh, _ := s.Create(ctx)

	now = now.Add(30 * time.Second)
	if _, err := s.Get(ctx, old.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("idle session should expire: %v", err)
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session: %v", err)
	}

	if n := s.Cleanup(ctx); n != 1 {
		t.Errorf("Cleanup removed %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(time.Minute)
	defer s.Close()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess, _ := s.Create(ctx)
	for range 3 {
		now = now.Add(45 * time.Second)
		s.Touch(sess)
	}
	if !sess.LastSeen().Equal(now) {
		t.Errorf("LastSeen = %v, want %v", sess.LastSeen(), now)
	}
	if n := s.Cleanup(ctx); n != 0 {
		t.Errorf("Cleanup removed %d watched sessions", n)
	}
	if _, err := s.Get(ctx, sess.ID); err != nil {
		t.Errorf("watched session: %v", err)
	}
}

func TestDeleteClosesSubscribers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(time.Minute)

	sess, _ := s.Create(ctx)
	events, cancel := sess.Events.Subscribe()
	defer cancel()

	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	for range events {
	}
	if _, err := s.Get(ctx, sess.ID); err == nil {
		t.Error("deleted session still found")
	}
	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
