// Package utils provides internal utility functions for the trace matcher.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Great-circle distance and path length calculation
//   - Time formatting and conversion utilities
package utils
