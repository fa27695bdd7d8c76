// Package formatter serializes match results for callers.
//
// This package is organized into:
// - geojson.go: GeoJSON Feature output of the merged route geometry
// - json.go: plain JSON serialization
package formatter
