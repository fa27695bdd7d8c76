// Package mapbox is an HTTP client for the Mapbox-style Map Matching and
// Directions APIs. It covers exactly the two calls the matching pipeline
// needs: snapping an ordered GPS trace onto the road network, and routing
// through an ordered list of waypoints. Turn-by-turn steps, alternative
// routes and every other capability of the services are ignored.
package mapbox
