// README: OSRM driving-route client (geojson overview polylines).
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"uipathfinder/internal/llm"
)

// DefaultOSRMBaseURL is the public OSRM demo server.
const DefaultOSRMBaseURL = "http://router.project-osrm.org"

// OSRMClient fetches driving routes from an OSRM instance.
type OSRMClient struct {
	baseURL string
	httpc   *http.Client
}

func NewOSRMClient(baseURL string) *OSRMClient {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type osrmResponse struct {
	Routes []struct {
		Geometry struct {
			// geojson positions: [lng, lat]
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// DrivingRoute returns the road geometry between two coordinates as an
// ordered lat/lng list. OSRM wants lng,lat pairs in the URL.
func (c *OSRMClient) DrivingRoute(ctx context.Context, start, end llm.Coordinates) ([]llm.Coordinates, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson&steps=false",
		c.baseURL, start.Lng, start.Lat, end.Lng, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("osrm: read response: %w", err)
	}

	var or osrmResponse
	if err := json.Unmarshal(body, &or); err != nil {
		return nil, fmt.Errorf("osrm: unmarshal response: %w", err)
	}
	if len(or.Routes) == 0 {
		return nil, fmt.Errorf("osrm: no route found")
	}

	positions := or.Routes[0].Geometry.Coordinates
	route := make([]llm.Coordinates, 0, len(positions))
	for _, pos := range positions {
		if len(pos) < 2 {
			continue
		}
		route = append(route, llm.Coordinates{Lat: pos[1], Lng: pos[0]})
	}
	return route, nil
}
