// README: Prompt builder tests: totality, determinism, protocol wording.
package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt_TotalWithZeroConfig(t *testing.T) {
	got := BuildPrompt(PromptConfig{})
	if got == "" {
		t.Fatal("zero-value config must still render a prompt")
	}
	for _, placeholder := range []string{
		"{{user_profile_block}}",
		"{{buildings_block}}",
		"{{weather_block}}",
		"{{user_request}}",
		"{{target_date}}",
		"No history; treat as a new customer.",
		"Restaurants not available; pick any reasonable campus dining.",
		"Home address not provided",
	} {
		if !strings.Contains(got, placeholder) {
			t.Errorf("missing default placeholder %q", placeholder)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	cfg := PromptConfig{
		UserRequest: "a chill day with lots of coffee",
		TargetDate:  "2026-03-14",
	}
	if BuildPrompt(cfg) != BuildPrompt(cfg) {
		t.Fatal("identical config must render identical prompts")
	}
}

func TestBuildPrompt_InterpolatesRequestAndDate(t *testing.T) {
	got := BuildPrompt(PromptConfig{
		UserRequest: "study for my ECE 391 exam",
		TargetDate:  "2026-03-14",
		Weather:     "Sunny, high 18C",
		HomeAddress: "502 E Healey St",
	})
	for _, want := range []string{
		`Natural language request: "study for my ECE 391 exam"`,
		"Date to plan for (YYYY-MM-DD): 2026-03-14",
		"Sunny, high 18C",
		"502 E Healey St",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// The flags and the fallback plan in the prompt text are what the
// interpreter is written against; losing them would silently break the
// whole pipeline, so pin them here.
func TestBuildPrompt_ProtocolWording(t *testing.T) {
	got := BuildPrompt(PromptConfig{})
	for _, want := range []string{
		`"GOOD RESULT"`,
		`"LACK INFO"`,
		`"pathResult"`,
		"Grainger Library on the requested date from 13:00 to 23:00",
		"sleeps at ECEB (ECE Building) from 23:00 to 09:00",
		"Return ONLY a single JSON object",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt protocol missing %q", want)
		}
	}
}
