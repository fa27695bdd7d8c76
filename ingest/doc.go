// Package ingest reads already-collected GPS traces into fix sequences.
//
// Two batch sources are supported: GPX 1.1 track files, and recorded
// GTFS-Realtime VehiclePositions protobuf dumps filtered to one vehicle.
// Neither source is live; the matching pipeline operates on complete
// sequences only.
package ingest
