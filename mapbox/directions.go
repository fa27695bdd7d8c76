package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
)

// directionsResponse mirrors the Directions endpoint's JSON body
type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// RouteWaypoints requests one route through the given ordered waypoints.
// Alternative routes are not requested; the first returned route is taken.
func (c *Client) RouteWaypoints(ctx context.Context, fixes []tracematcher.Fix) (*tracematcher.Route, error) {
	if len(fixes) < 2 {
		return nil, fmt.Errorf("routing requires at least 2 waypoints, got %d", len(fixes))
	}

	q := url.Values{}
	q.Set("access_token", c.accessToken)
	q.Set("geometries", "polyline6")
	q.Set("overview", "full")

	reqURL := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s?%s",
		c.baseURL, c.profile, coordinatePath(fixes), q.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result directionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}
	if result.Code != "Ok" || len(result.Routes) == 0 {
		return nil, fmt.Errorf("%w: code %q", ErrNoMatch, result.Code)
	}

	geometry, err := decodeGeometry(result.Routes[0].Geometry)
	if err != nil {
		return nil, err
	}
	return &tracematcher.Route{
		Geometry:        geometry,
		DistanceMeters:  result.Routes[0].Distance,
		DurationSeconds: result.Routes[0].Duration,
	}, nil
}
