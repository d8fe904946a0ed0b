// README: Schedule generation service: prompt, fan-out, repair, route segments.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"uipathfinder/internal/llm"
	"uipathfinder/internal/routing"
)

// DefaultMaxTokens bounds each completion; itineraries fit comfortably.
const DefaultMaxTokens = 1500

// Service runs the full generation pipeline: one prompt, N concurrent model
// invocations, per-model interpretation and repair, per-leg route lookups.
type Service struct {
	invokers  map[string]llm.ChatInvoker
	routes    routing.Provider
	targets   []ModelTarget
	maxTokens int
}

// NewService wires the orchestrator. invokers maps provider names to chat
// clients; routes may be nil, which disables polyline enrichment; an empty
// maxTokens selects DefaultMaxTokens.
func NewService(invokers map[string]llm.ChatInvoker, routes routing.Provider, targets []ModelTarget, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{
		invokers:  invokers,
		routes:    routes,
		targets:   targets,
		maxTokens: maxTokens,
	}
}

// GenerateCommand is one user request for a day's itinerary.
type GenerateCommand struct {
	UserRequest    string
	TargetDate     string
	HomeAddress    string
	MealPreference string
	SleepAtLibrary bool
}

// Generate fans the request out to every configured model concurrently and
// waits for all of them. The result list always has one entry per target, in
// registry order; a single model's failure never touches its siblings.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) []ModelResult {
	prompt := llm.BuildPrompt(llm.PromptConfig{
		UserRequest:    cmd.UserRequest,
		TargetDate:     cmd.TargetDate,
		HomeAddress:    cmd.HomeAddress,
		MealPreference: cmd.MealPreference,
		SleepAtLibrary: cmd.SleepAtLibrary,
	})

	results := make([]ModelResult, len(s.targets))
	var wg sync.WaitGroup
	for i, m := range s.targets {
		wg.Add(1)
		go func(i int, m ModelTarget) {
			defer wg.Done()
			results[i] = s.generateOne(ctx, m, prompt)
		}(i, m)
	}
	wg.Wait()
	return results
}

// GenerateSingle runs the pipeline for one model id without fan-out; the
// smoke-test endpoint uses it.
func (s *Service) GenerateSingle(ctx context.Context, target ModelTarget, cmd GenerateCommand) (llm.InterpretResult, error) {
	prompt := llm.BuildPrompt(llm.PromptConfig{
		UserRequest:    cmd.UserRequest,
		TargetDate:     cmd.TargetDate,
		HomeAddress:    cmd.HomeAddress,
		MealPreference: cmd.MealPreference,
		SleepAtLibrary: cmd.SleepAtLibrary,
	})
	return s.invoke(ctx, target, prompt)
}

func (s *Service) generateOne(ctx context.Context, m ModelTarget, prompt string) ModelResult {
	res, err := s.invoke(ctx, m, prompt)
	if err != nil {
		log.Printf("llm call failed for model %s: %v", m.ModelID, err)
		fb := llm.FallbackPath(fallbackTitle(m.ID))
		items := llm.FallbackSchedule()
		return ModelResult{
			ID:         m.ID,
			ModelID:    m.ModelID,
			ModelName:  m.ModelName,
			Status:     llm.StatusFailed,
			Reason:     err.Error(),
			Title:      fb.Title,
			Schedule:   items,
			Segments:   s.buildSegments(ctx, items),
			IsFallback: true,
		}
	}

	var first llm.PathOption
	if len(res.Data.PathResult) > 0 {
		first = res.Data.PathResult[0]
	}

	items, ok := decodeSchedule(first.Schedule)
	isFallback := first.Fallback
	title := first.Title
	if !ok {
		// Usable status but no usable schedule: substitute the canned plan
		// while keeping the model's own status and reason.
		fb := llm.FallbackPath(fallbackTitle(m.ID))
		first = fb
		items = llm.FallbackSchedule()
		isFallback = true
		title = fb.Title
	}
	if title == "" {
		title = fmt.Sprintf("Option %d", m.ID)
	}

	return ModelResult{
		ID:         m.ID,
		ModelID:    m.ModelID,
		ModelName:  m.ModelName,
		Status:     res.Status,
		Reason:     res.Data.Reason,
		Title:      title,
		Schedule:   items,
		Segments:   s.buildSegments(ctx, items),
		IsFallback: isFallback,
	}
}

// invoke performs the single-model pipeline: chat call then interpretation.
func (s *Service) invoke(ctx context.Context, m ModelTarget, prompt string) (llm.InterpretResult, error) {
	provider := m.Provider
	if provider == "" {
		provider = ProviderFireworks
	}
	inv, ok := s.invokers[provider]
	if !ok {
		return llm.InterpretResult{}, fmt.Errorf("no invoker configured for provider %q", provider)
	}
	raw, err := inv.ChatCompletion(ctx, m.ModelID, prompt, s.maxTokens)
	if err != nil {
		return llm.InterpretResult{}, err
	}
	return llm.Interpret(raw), nil
}

// buildSegments looks up a road polyline for each consecutive pair of stops.
// Legs with missing coordinates or routing failures get an empty route; the
// segment list always covers every leg so the frontend logic stays uniform.
func (s *Service) buildSegments(ctx context.Context, items []llm.ScheduleItem) []RouteSegment {
	if len(items) < 2 {
		return []RouteSegment{}
	}
	segments := make([]RouteSegment, 0, len(items)-1)
	for i := 0; i < len(items)-1; i++ {
		route := []llm.Coordinates{}
		start, end := items[i].Coordinates, items[i+1].Coordinates
		if s.routes != nil && start != nil && end != nil {
			r, err := s.routes.DrivingRoute(ctx, *start, *end)
			if err != nil {
				log.Printf("routing failed for leg %d->%d: %v", i, i+1, err)
			} else if r != nil {
				route = r
			}
		}
		segments = append(segments, RouteSegment{FromIndex: i, ToIndex: i + 1, Route: route})
	}
	return segments
}

// decodeSchedule leniently decodes a raw schedule. Malformed shapes and
// empty lists both report !ok; deep validation stays out of scope on
// purpose (the map view tolerates missing coordinates).
func decodeSchedule(raw json.RawMessage) ([]llm.ScheduleItem, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []llm.ScheduleItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func fallbackTitle(id int) string {
	return fmt.Sprintf("Option %d: Grainger Library 2F", id)
}
