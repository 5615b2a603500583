// Package anim implements the step-animation contract shared by every
// animated engine in algoviz.
//
// An animated run is a sequence of suspension points interleaved with
// synchronous state mutation and rendering. The algorithm packages
// (sorting, search, pathfind, tree) describe runs as lazy step sequences;
// their drivers use a [Pacer] to decide how long to wait between steps
// and whether to stall for a pause.
//
// # Pacing
//
// A [Pacer] combines three things:
//   - a [Clock] that performs the actual waiting ([Real] or [Instant])
//   - a user-adjustable step delay (see [DelayForSpeed])
//   - a [Pause] token checked at explicit checkpoints
//
// Suspension happens only between steps, never mid-mutation, so a stalled
// run always exposes a consistent pre- or post-step snapshot.
//
// # Pausing
//
// [Pause] replaces the poll-a-flag loop of a browser implementation: a
// waiter blocks on a channel that is closed when the token is resumed, and
// the run continues from exactly the next unit of work.
//
//	p := anim.NewPacer(anim.Real, anim.DefaultDelay)
//	p.Pause.Toggle()          // pause
//	go p.Pause.Resume()       // resume from elsewhere
//	_ = p.Checkpoint(ctx)     // returns once resumed
package anim
