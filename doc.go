// Package tracematcher turns a raw, noisy, possibly oversized sequence of
// timestamped GPS fixes into one best-effort road-aligned route geometry.
//
// The pipeline sorts fixes by time, thins them to the external service's
// per-request point limit, splits oversized traces into batches and drives
// a fallback cascade: concurrent map matching per batch, then a single
// directions request through sampled waypoints, then a locally built
// straight-segment path. The first strategy that yields geometry wins; the
// last rung needs no network and cannot fail with two or more fixes.
//
// Everything is request-scoped. The external road services are reached
// through the RouteService interface, implemented by the mapbox subpackage.
package tracematcher
