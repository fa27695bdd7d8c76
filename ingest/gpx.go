package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

// gpxFile covers the subset of GPX 1.1 the matcher consumes: track points
// with position and time. Extensions, waypoints and route elements are
// ignored.
type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type gpxPoint struct {
	Lat  float64   `xml:"lat,attr"`
	Lon  float64   `xml:"lon,attr"`
	Time time.Time `xml:"time"`
}

// ReadGPX reads one GPX file and flattens every track segment into a
// single fix sequence, in document order. Points without a timestamp are
// kept; the pipeline's temporal sort is stable, so they stay where the
// recorder put them.
func ReadGPX(path string) ([]tracematcher.Fix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadGPXFrom(file)
}

// ReadGPXFrom parses GPX from an io.Reader
func ReadGPXFrom(r io.Reader) ([]tracematcher.Fix, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var fixes []tracematcher.Fix
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				fixes = append(fixes, tracematcher.Fix{
					ID:   fmt.Sprintf("gpx-%d", len(fixes)),
					Lat:  pt.Lat,
					Lon:  pt.Lon,
					Time: pt.Time,
				})
			}
		}
	}
	if len(fixes) == 0 {
		return nil, fmt.Errorf("GPX file contains no track points")
	}
	return fixes, nil
}
