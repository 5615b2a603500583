package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const keepAliveInterval = 15 * time.Second

// handleEvents streams a session's render events as server-sent events.
// The stream opens with a "snapshot" event holding the full state, followed
// by one "render" event per engine event. It ends when the client leaves or
// the session ends.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rc := http.NewResponseController(w)
	// Streams are long-lived; the server's write timeout must not cut them.
	_ = rc.SetWriteDeadline(time.Time{})

	events, cancel := sess.Events.Subscribe()
	defer cancel()

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", snapshotOf(sess)); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event stream cannot flush", "error", err)
		return
	}

	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, "render", ev); err != nil {
				return
			}
		drain:
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						_ = rc.Flush()
						return
					}
					if err := writeEvent(w, "render", ev); err != nil {
						return
					}
				default:
					break drain
				}
			}
		case <-keepAlive.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
		// An open stream keeps the session alive between commands.
		s.sessions.Touch(sess)
	}
}

func writeEvent(w io.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
