// README: Fan-out model registry and per-model result types.
package schedule

import "uipathfinder/internal/llm"

// Provider names routable by the orchestrator.
const (
	ProviderFireworks = "fireworks"
	ProviderGemini    = "gemini"
)

// ModelTarget identifies one backend model participating in a fan-out.
// The registry is injected at construction, not read from a global, so
// tests can substitute fakes.
type ModelTarget struct {
	ID        int
	ModelID   string
	ModelName string
	Provider  string
}

// DefaultTargets is the production registry. The ordinals are stable:
// result lists come back in this order regardless of completion order.
func DefaultTargets() []ModelTarget {
	return []ModelTarget{
		{
			ID:        1,
			ModelID:   "accounts/fireworks/models/qwen2p5-vl-32b-instruct",
			ModelName: "Qwen3 VL 30B A3B Instruct",
			Provider:  ProviderFireworks,
		},
		{
			ID:        2,
			ModelID:   "accounts/fireworks/models/llama-v3p3-70b-instruct",
			ModelName: "Llama v3.3 70B Instruct",
			Provider:  ProviderFireworks,
		},
	}
}

// RouteSegment decorates one leg of an itinerary with a road-following
// polyline. Route may be empty when routing was unavailable; the map
// renderer falls back to straight lines.
type RouteSegment struct {
	FromIndex int               `json:"fromIndex"`
	ToIndex   int               `json:"toIndex"`
	Route     []llm.Coordinates `json:"route"`
}

// ModelResult is the orchestrator's per-model outcome. Every entry carries a
// usable schedule: a slot is never empty, worst case it holds the canned
// Grainger/ECEB plan.
type ModelResult struct {
	ID         int                `json:"id"`
	ModelID    string             `json:"modelId"`
	ModelName  string             `json:"modelName"`
	Status     llm.Status         `json:"status"`
	Reason     string             `json:"reason"`
	Title      string             `json:"title"`
	Schedule   []llm.ScheduleItem `json:"schedule"`
	Segments   []RouteSegment     `json:"segments"`
	IsFallback bool               `json:"isFallback"`
}
