// Package server exposes the tracker, calm timer and synth over a local HTTP API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Several methods may share one path; unmatched methods get 405 with an Allow header.
//
// # API
//
// [API] registers JSON endpoints under /api/:
//
//	GET  /api/today             → today's record, completion and quote
//	GET  /api/days/{day}        → record for an ISO date
//	POST /api/mood              → {"mood": "Hopeful"}
//	POST /api/water             → {"delta": 1}
//	POST /api/meals             → {"item": "Lunch"}
//	POST /api/routine           → {"item": "15-min walk"}
//	GET  /api/report?days=7     → completion report
//	GET  /api/moods             → mood table with frequencies and playlists
//	GET  /api/phases            → program phases
//	GET  /api/calm              → calm timer snapshot
//	POST /api/calm/start        → start a breathing session
//	POST /api/calm/stop         → stop it early
//	GET  /api/calm/stream       → websocket of calm snapshots at the frame rate
//	GET  /api/synth             → synth state
//	POST /api/synth/start       → {"mood": "Calm"}
//	POST /api/synth/stop
//	POST /api/synth/volume      → {"volume": 0.1}
//	GET  /healthz               → liveness, audio availability and uptime ([Health])
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
