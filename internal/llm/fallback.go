// README: Deterministic Grainger/ECEB fallback itinerary.
package llm

import "encoding/json"

// DefaultFallbackTitle labels the canned plan when the caller has no better name.
const DefaultFallbackTitle = "Fallback: Grainger Library + ECEB"

var (
	graingerCoords = Coordinates{Lat: 40.1125, Lng: -88.2267}
	ecebCoords     = Coordinates{Lat: 40.1149, Lng: -88.228}
)

// FallbackSchedule returns the fixed two-stop plan substituted whenever a
// model fails to produce a usable itinerary: study at Grainger Library from
// 13:00 to 23:00, then sleep at ECEB from 23:00 to 09:00.
func FallbackSchedule() []ScheduleItem {
	grainger := graingerCoords
	eceb := ecebCoords
	return []ScheduleItem{
		{
			Time:        "13:00",
			Location:    "Grainger Library 2F",
			Activity:    "Study at Grainger Library from 13:00 to 23:00.",
			Coordinates: &grainger,
			Notes:       "no where to go, sleep at grainger 2F.",
		},
		{
			Time:        "23:00",
			Location:    "ECE Building (ECEB)",
			Activity:    "Sleep at ECEB from 23:00 to 09:00.",
			Coordinates: &eceb,
			Notes:       "no where to go, sleep at grainger 2F.",
		},
	}
}

// FallbackPath wraps FallbackSchedule in a PathOption marked fallback:true.
// An empty title selects DefaultFallbackTitle. Pure and total.
func FallbackPath(title string) PathOption {
	if title == "" {
		title = DefaultFallbackTitle
	}
	raw, _ := json.Marshal(FallbackSchedule())
	return PathOption{
		Title:    title,
		Fallback: true,
		Schedule: raw,
	}
}
