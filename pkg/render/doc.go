// Package render defines the renderer contract between the animation
// engines and whatever displays them.
//
// Engines never touch presentation directly. They emit [Event] values to a
// [Sink]: element value updates, visual-state transitions (comparing,
// swapping, sorted, visited, checked, found, current, path, wall) and
// container contents. Sinks decide what to do with them:
//
//   - [Board] materialises events into a queryable view, keyed by index,
//     grid cell or tree node value (the explicit logical-identity to
//     display-handle mapping, rebuilt only on [KindReset])
//   - [Text] prints a colored step log for terminals
//   - [JSONLines] streams events as newline-delimited JSON
//   - [Broadcaster] fans events out to live subscribers (SSE clients, TUIs)
//   - [Recorder] keeps every event for traces and tests
//
// [RenderSVG] turns a Board snapshot into a standalone SVG document.
package render
