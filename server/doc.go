// Package server exposes the matching pipeline over HTTP: a single match
// operation plus a health probe. Rendering and persistence stay with the
// caller; the server only returns merged geometry and its diagnostics.
package server
