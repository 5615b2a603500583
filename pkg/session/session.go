// Package session keeps the per-visitor engine state of the HTTP server.
//
// Each [Session] owns a complete [engine.Visualizer] whose events are
// applied to a [render.Board] (for snapshots) and fanned out through a
// [render.Broadcaster] (for live event streams). Sessions live in memory and
// expire after a period without requests:
//
//	store := session.NewStore(30*time.Minute, newVisualizer, logger)
//	go store.Run(ctx, time.Minute)
//
//	sess, err := store.Create(ctx)
//	...
//	sess, err = store.Get(ctx, id) // SESSION_NOT_FOUND once expired
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is one visitor's engines and their output.
type Session struct {
	ID        string
	Viz       *engine.Visualizer
	Board     *render.Board
	Events    *render.Broadcaster
	CreatedAt time.Time

	lastSeen atomic.Int64
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// IsExpired reports whether the session has been idle for longer than ttl.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastSeen()) > ttl
}

// close stops any active runs and disconnects subscribers.
func (s *Session) close() {
	s.Viz.Stop()
	s.Events.Close()
}

// Factory builds the engines of a new session around its sink.
type Factory func(sink render.Sink) *engine.Visualizer

// Store is an in-memory session registry. It is safe for concurrent use.
type Store struct {
	ttl     time.Duration
	factory Factory
	logger  *log.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a store. A ttl of zero selects DefaultTTL.
func NewStore(ttl time.Duration, factory Factory, logger *log.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		ttl:      ttl,
		factory:  factory,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with fresh engines.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	board := render.NewBoard()
	events := render.NewBroadcaster(render.DefaultSubscriberBuffer)
	sess := &Session{
		ID:        uuid.NewString(),
		Board:     board,
		Events:    events,
		CreatedAt: s.now(),
	}
	sess.touch(sess.CreatedAt)
	sess.Viz = s.factory(render.Multi(board, events))

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.logger.Debug("session created", "id", sess.ID, "sessions", n)
	return sess, nil
}

// Get returns a live session and marks it used.
func (s *Store) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	now := s.now()
	if !ok || sess.IsExpired(now, s.ttl) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.touch(now)
	return sess, nil
}

// Touch marks sess used, as a client that is still watching it.
func (s *Store) Touch(sess *Session) {
	sess.touch(s.now())
}

// Delete ends a session. Deleting an unknown session is not an error.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.close()
	}
	return nil
}

// Cleanup ends every expired session and returns how many were removed.
func (s *Store) Cleanup(_ context.Context) int {
	now := s.now()
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.IsExpired(now, s.ttl) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		s.logger.Debug("expired sessions removed", "count", len(expired))
	}
	return len(expired)
}

// Len returns the number of sessions held, including expired ones not yet
// cleaned up.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run calls Cleanup every interval until ctx is done, then closes every
// remaining session.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Cleanup(ctx)
		}
	}
}

// Close ends every session.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	for _, sess := range all {
		sess.close()
	}
}
