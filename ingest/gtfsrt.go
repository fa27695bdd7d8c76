package ingest

import (
	"fmt"
	"os"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

// ReadVehiclePositions reads recorded GTFS-RT VehiclePositions dumps and
// extracts one fix per dump for the given vehicle. Feeds carry one position
// per vehicle per snapshot, so a trace needs a series of dumps; they may be
// passed in any order, the pipeline sorts by timestamp.
//
// vehicleID may be empty when every dump monitors a single vehicle.
func ReadVehiclePositions(paths []string, vehicleID string) ([]tracematcher.Fix, error) {
	var fixes []tracematcher.Fix
	for _, path := range paths {
		fix, err := readVehiclePosition(path, vehicleID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if fix != nil {
			fixes = append(fixes, *fix)
		}
	}
	if len(fixes) == 0 {
		return nil, fmt.Errorf("no positions found for vehicle %q", vehicleID)
	}
	return fixes, nil
}

func readVehiclePosition(path, vehicleID string) (*tracematcher.Fix, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	headerTS := int64(0)
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		v := e.Vehicle
		if v == nil || v.Position == nil {
			continue
		}
		id := ""
		if v.Vehicle != nil && v.Vehicle.Id != nil {
			id = *v.Vehicle.Id
		}
		if vehicleID != "" && id != vehicleID {
			continue
		}
		ts := headerTS
		if v.Timestamp != nil {
			ts = int64(*v.Timestamp)
		}
		return &tracematcher.Fix{
			ID:   id,
			Lat:  float64(v.Position.GetLatitude()),
			Lon:  float64(v.Position.GetLongitude()),
			Time: time.Unix(ts, 0).UTC(),
		}, nil
	}
	// Vehicle absent from this snapshot; skip the dump.
	return nil, nil
}
