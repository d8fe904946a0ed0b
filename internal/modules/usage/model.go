// README: Building usage counters aggregated from saved schedules.
package usage

import "time"

// BuildingUsage counts how often a location appears in a user's saved
// schedules. Locations are matched case-insensitively; Location keeps the
// spelling from the first sighting.
type BuildingUsage struct {
	Location  string    `json:"location"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}
