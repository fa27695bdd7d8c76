package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
	"github.com/theoremus-urban-solutions/trace-matcher/config"
)

var (
	// ErrMissingAccessToken is returned by NewClient when no access token
	// is configured. Without the credential no strategy that reaches the
	// service can proceed, so callers should fail the whole request.
	ErrMissingAccessToken = errors.New("mapbox access token is not configured")

	// ErrNoMatch is returned when the service answered but produced no
	// usable geometry for the submitted points.
	ErrNoMatch = errors.New("service returned no usable match")
)

// Client calls the Map Matching and Directions endpoints. It is safe for
// concurrent use; the pipeline issues one matching request per batch in
// parallel.
type Client struct {
	baseURL      string
	profile      string
	accessToken  string
	searchRadius int
	session      string
	httpClient   *http.Client
}

// NewClient creates a client from the service configuration. searchRadius
// is the per-point snap tolerance in meters sent with matching requests.
func NewClient(cfg config.MapboxConfig, searchRadius int) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	profile := cfg.Profile
	if profile == "" {
		profile = config.DefaultProfile
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout == 0 {
		timeout = time.Duration(config.DefaultTimeoutMS) * time.Millisecond
	}
	if searchRadius <= 0 {
		searchRadius = config.DefaultSearchRadiusMeters
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		profile:      profile,
		accessToken:  cfg.AccessToken,
		searchRadius: searchRadius,
		session:      uuid.NewString(),
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

// errorEnvelope is the error body shape shared by both endpoints
type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// coordinatePath renders fixes as the lon,lat;lon,lat path segment both
// endpoints expect.
func coordinatePath(fixes []tracematcher.Fix) string {
	var b strings.Builder
	for i, f := range fixes {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%.6f,%.6f", f.Lon, f.Lat)
	}
	return b.String()
}

// get performs one request and returns the response body or an error built
// from the service's error envelope.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("X-Client", "trace-matcher")
	req.Header.Add("X-Client-Session", c.session)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
			return nil, fmt.Errorf("API error %s: %s", envelope.Code, envelope.Message)
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// polyline6 is the geometry encoding requested from both endpoints
var polyline6 = polyline.Codec{Dim: 2, Scale: 1e6}

// decodeGeometry decodes a polyline6 string into lon/lat vertices
func decodeGeometry(encoded string) (orb.LineString, error) {
	if encoded == "" {
		return nil, ErrNoMatch
	}
	coords, _, err := polyline6.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode geometry: %w", err)
	}
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		// polyline coordinates are lat,lon; geometry is kept lon,lat
		ls = append(ls, orb.Point{c[1], c[0]})
	}
	return ls, nil
}
