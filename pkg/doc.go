// Package pkg provides the libraries behind algoviz, a step-by-step
// visualizer for classic algorithms.
//
// # Overview
//
// Every algorithm is written as a plain iterator of steps. A runner walks
// the steps, turns each into render events and suspends between them
// through a pacer, so the same algorithm can animate in a terminal, stream
// to a browser, or be recorded instantly as a trace.
//
//  1. Algorithms: [sorting], [search], [pathfind], [tree], [linear]
//  2. Animation: [anim] (clock, pause token, pacer)
//  3. Output: [render] (events, board, broadcaster, text and SVG sinks)
//  4. Orchestration: [engine] (one facade per visualizer), [trace] (cached
//     full runs), [session] (per-visitor engines for the HTTP server)
//  5. Infrastructure: [cache], [config], [errors], [observability],
//     [buildinfo]
//
// # Data flow
//
//	algorithm step iterator
//	         ↓
//	runner (pacer: delay, pause, cancellation)
//	         ↓
//	render.Event
//	         ↓
//	Sink: Board / Text / Broadcaster (SSE) / Recorder (trace)
//
// # Concurrency
//
// Each engine allows one run at a time. A second run, or a change to the
// engine's data while it runs, fails with [errors.ErrCodeBusy]; Reset
// cancels the run and waits for it. Engines never share state, so a
// sorting run and a tree traversal can animate side by side.
//
// [sorting]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/sorting
// [search]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/search
// [pathfind]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/pathfind
// [tree]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/tree
// [linear]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/linear
// [anim]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/anim
// [render]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/render
// [engine]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/engine
// [trace]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/trace
// [session]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/errors
// [errors.ErrCodeBusy]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/errors#ErrCodeBusy
// [observability]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/algoviz/pkg/buildinfo
package pkg
