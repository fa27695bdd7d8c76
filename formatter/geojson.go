package formatter

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
	"github.com/theoremus-urban-solutions/trace-matcher/utils"
)

// BuildGeoJSON renders a match result as a GeoJSON FeatureCollection with
// one LineString feature. The matching method, confidence and point counts
// travel as feature properties so map clients can style by fidelity.
func BuildGeoJSON(result *tracematcher.MatchResult) ([]byte, error) {
	feature := geojson.NewFeature(result.Geometry)
	feature.Properties["method"] = result.Method
	feature.Properties["processedPoints"] = result.ProcessedPoints
	feature.Properties["originalPoints"] = result.OriginalPoints
	feature.Properties["generatedAt"] = utils.Iso8601Now()
	if result.Confidence != nil {
		feature.Properties["confidence"] = *result.Confidence
	}
	if result.DistanceMeters > 0 {
		feature.Properties["distanceMeters"] = result.DistanceMeters
	}
	if result.DurationSeconds > 0 {
		feature.Properties["durationSeconds"] = result.DurationSeconds
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	return json.Marshal(fc)
}
