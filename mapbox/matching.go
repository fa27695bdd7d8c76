package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

// matchingResponse mirrors the Map Matching endpoint's JSON body. Only the
// fields the pipeline consumes are declared.
type matchingResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Matchings []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"matchings"`
	// One entry per submitted point; null when the service could not
	// place that point on the road network.
	Tracepoints []*struct {
		Location       [2]float64 `json:"location"`
		MatchingsIndex int        `json:"matchings_index"`
		WaypointIndex  int        `json:"waypoint_index"`
	} `json:"tracepoints"`
}

// MatchTrace snaps one batch of fixes onto the road network. The request
// asks for route tidying, full-resolution geometry and distance/duration
// annotations, with the configured search radius applied to every point.
func (c *Client) MatchTrace(ctx context.Context, fixes []tracematcher.Fix) (*tracematcher.TraceMatch, error) {
	if len(fixes) < 2 {
		return nil, fmt.Errorf("matching requires at least 2 points, got %d", len(fixes))
	}

	radii := make([]string, len(fixes))
	for i := range radii {
		radii[i] = strconv.Itoa(c.searchRadius)
	}

	q := url.Values{}
	q.Set("access_token", c.accessToken)
	q.Set("geometries", "polyline6")
	q.Set("overview", "full")
	q.Set("tidy", "true")
	q.Set("radiuses", strings.Join(radii, ";"))
	q.Set("annotations", "distance,duration")

	reqURL := fmt.Sprintf("%s/matching/v5/mapbox/%s/%s?%s",
		c.baseURL, c.profile, coordinatePath(fixes), q.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result matchingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse matching response: %w", err)
	}
	if result.Code != "Ok" || len(result.Matchings) == 0 {
		return nil, fmt.Errorf("%w: code %q", ErrNoMatch, result.Code)
	}

	// Stitch sub-matchings together when the service split the trace.
	var match tracematcher.TraceMatch
	for _, m := range result.Matchings {
		geometry, err := decodeGeometry(m.Geometry)
		if err != nil {
			continue
		}
		match.Geometry = append(match.Geometry, geometry...)
		match.DistanceMeters += m.Distance
		match.DurationSeconds += m.Duration
	}
	if len(match.Geometry) == 0 {
		return nil, ErrNoMatch
	}

	match.SubmittedPoints = len(fixes)
	for _, tp := range result.Tracepoints {
		if tp != nil {
			match.MatchedPoints++
		}
	}
	return &match, nil
}
