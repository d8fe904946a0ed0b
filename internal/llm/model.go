// README: Wire types shared by the prompt builder, interpreter, and orchestrator.
package llm

import "encoding/json"

// Status is the outcome tag attached to every interpreted model response.
// The values are the literal flags the prompt instructs models to emit,
// plus FAILED which is only ever produced by the orchestrator when an
// invocation errors out before any text is available.
type Status string

const (
	StatusGoodResult Status = "GOOD RESULT"
	StatusLackInfo   Status = "LACK INFO"
	StatusFailed     Status = "FAILED"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ScheduleItem is one stop in an itinerary. Time is a wall-clock label
// (HH:MM, 24-hour, campus local); it is never validated as a duration.
// Coordinates may be absent and downstream consumers must tolerate that.
type ScheduleItem struct {
	Time        string       `json:"time"`
	Location    string       `json:"location"`
	Activity    string       `json:"activity"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// PathOption is one candidate itinerary. Schedule is carried as raw JSON:
// the interpreter only checks that pathResult itself is a non-empty array
// and passes whatever the model put in each schedule through untouched.
// Decoding into []ScheduleItem happens at the orchestrator, where a
// malformed schedule degrades to the fallback plan instead of an error.
type PathOption struct {
	Title    string          `json:"title"`
	Fallback bool            `json:"fallback,omitempty"`
	Schedule json.RawMessage `json:"schedule,omitempty"`
}

// GenerationData is the repaired payload returned by the interpreter:
// a word-capped reason plus a never-empty pathResult.
type GenerationData struct {
	Reason     string       `json:"reason"`
	PathResult []PathOption `json:"pathResult"`
}

// InterpretResult pairs an outcome tag with the repaired payload.
type InterpretResult struct {
	Status Status
	Data   GenerationData
}
