// README: Road-routing provider contract.
package routing

import (
	"context"

	"uipathfinder/internal/llm"
)

// Provider returns an ordered sequence of waypoints describing a
// road-following path between two stops. Implementations report transport
// problems as errors; callers treat any error as "no polyline" and render
// a straight line instead, so a routing outage never fails a schedule.
type Provider interface {
	DrivingRoute(ctx context.Context, start, end llm.Coordinates) ([]llm.Coordinates, error)
}
