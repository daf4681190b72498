// Package server provides HTTP routing, middleware, and the JSON control API for a playback session.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Control API
//
// [APIHandler] exposes a session.Session as JSON so scripts and other frontends can drive the same
// state the TUI shows:
//
//	GET  /api/state            full session snapshot
//	GET  /api/trending         trending tracks
//	GET  /api/recommendations  recommended tracks
//	GET  /api/search?q=        run a search and return its results
//	POST /api/play             body: a track, or {"id": "..."} of a displayed track
//	POST /api/pause
//	POST /api/stop             clear the current track
//	POST /api/toggle
//	POST /api/next             409 when there is nothing to navigate
//	POST /api/previous         409 when there is nothing to navigate
//	POST /api/transport        seek, volume, like, shuffle and repeat controls
//
// Errors are returned as {"error": "..."} with a status derived from the shared sentinel errors.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
