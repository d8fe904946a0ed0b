// README: Google Maps Directions route provider (alternative to OSRM).
package routing

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"uipathfinder/internal/llm"
)

// GoogleRouteService resolves driving routes through the Google Maps
// Directions API and decodes the overview polyline into waypoints.
type GoogleRouteService struct {
	client *maps.Client
}

func NewGoogleRouteService(apiKey string) (*GoogleRouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleRouteService{client: client}, nil
}

func (s *GoogleRouteService) DrivingRoute(ctx context.Context, start, end llm.Coordinates) ([]llm.Coordinates, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", start.Lat, start.Lng),
		Destination: fmt.Sprintf("%f,%f", end.Lat, end.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	points, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	route := make([]llm.Coordinates, 0, len(points))
	for _, p := range points {
		route = append(route, llm.Coordinates{Lat: p.Lat, Lng: p.Lng})
	}
	return route, nil
}
