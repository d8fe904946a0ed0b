// README: Schedule-planning prompt builder (context blocks + two-flag output protocol).
package llm

import "fmt"

// PromptConfig carries the named context blocks rendered into the planning
// prompt. Every field has a default placeholder so BuildPrompt is total: a
// zero-value config still yields a complete, well-formed prompt.
//
// Events, Transit, and SleepAtLibrary are accepted for callers that already
// collect them but are not interpolated into the current template; the
// planning rules reference transit and the sleep-at-library policy in fixed
// wording instead.
type PromptConfig struct {
	UserProfile    string
	Events         string
	Buildings      string
	Transit        string
	Weather        string
	Histories      string
	Restaurants    string
	HomeAddress    string
	SleepAtLibrary bool
	MealPreference string
	UserRequest    string
	TargetDate     string
}

const (
	defaultUserProfile    = "{{user_profile_block}}"
	defaultEvents         = "{{events_block}}"
	defaultBuildings      = "{{buildings_block}}"
	defaultTransit        = "{{transit_block}}"
	defaultWeather        = "{{weather_block}}"
	defaultHistories      = "No history; treat as a new customer."
	defaultRestaurants    = "Restaurants not available; pick any reasonable campus dining."
	defaultHomeAddress    = "Home address not provided"
	defaultMealPreference = "Any"
	defaultUserRequest    = "{{user_request}}"
	defaultTargetDate     = "{{target_date}}"
)

// BuildPrompt renders the full instruction document sent to a chat model.
// The exact wording is a protocol: the interpreter is written against the
// two leading flags, the JSON schema, and the Grainger/ECEB fallback plan
// this text mandates. Keep changes here in sync with interpret.go.
func BuildPrompt(cfg PromptConfig) string {
	if cfg.UserProfile == "" {
		cfg.UserProfile = defaultUserProfile
	}
	if cfg.Events == "" {
		cfg.Events = defaultEvents
	}
	if cfg.Buildings == "" {
		cfg.Buildings = defaultBuildings
	}
	if cfg.Transit == "" {
		cfg.Transit = defaultTransit
	}
	if cfg.Weather == "" {
		cfg.Weather = defaultWeather
	}
	if cfg.Histories == "" {
		cfg.Histories = defaultHistories
	}
	if cfg.Restaurants == "" {
		cfg.Restaurants = defaultRestaurants
	}
	if cfg.HomeAddress == "" {
		cfg.HomeAddress = defaultHomeAddress
	}
	if cfg.MealPreference == "" {
		cfg.MealPreference = defaultMealPreference
	}
	if cfg.UserRequest == "" {
		cfg.UserRequest = defaultUserRequest
	}
	if cfg.TargetDate == "" {
		cfg.TargetDate = defaultTargetDate
	}

	return fmt.Sprintf(`[SYSTEM]
You are UIPathFinder, an assistant that plans realistic day schedules
for UIUC students. You must obey time, location, and travel constraints.
You can refer to use information from the provided CONTEXT or don't if you have in your database. If information is missing,
make conservative assumptions and clearly mark them as "assumed".

[CONTEXT]
# User Profile (from SQL)
%s


# UIUC Building Database (name → coordinates, type, hours)
%s

# Recent User History (most recent first)
%s

# Weather Forecast
%s

# Nearby Restaurants (prefer for lunch/dinner)
%s

# Meal Preference
%s

# Home Address (must start/end here unless sleeping at library is allowed)
%s

[USER REQUEST]
Natural language request: "%s"
Date to plan for (YYYY-MM-DD): %s


[PLANNING RULES]
- Create 1 alternative schedule ("path option").
- Each schedule is a sequence of activities with:
  - time (HH:MM, 24-hour, local),
  - location (building name),
  - activity (short description),
  - coordinates (lat/lng from the building database).
- Ensure:
  - Start at HOME at or after 07:00.
  - End at HOME before 24:00 unless "sleep at library" is true; if true, final stop can be Grainger Library for sleeping.
  - Include at least 5 stops, including HOME at the beginning and end.
  - Include two meal stops (lunch around 12:00 and dinner around 18:00) chosen from the Restaurants list.
  - No overlapping times.
  - Travel times between locations are realistic using the transit + distance data.
  - Outdoor-heavy paths are avoided in bad weather conditions.
  - If you cannot meet these rules, explain in reason and provide the closest feasible schedule.
- Prefer real UIUC buildings from CONTEXT; do not invent building names.
- If a requested constraint is impossible, adjust gently and explain in comments.

[OUTPUT FORMAT]
Return ONLY a single JSON object with this exact structure, no extra text:

{
  "reason": "string (3-150 words) explaining how you built this schedule or why context was limited",
  "pathResult": [
        {
      "title": "string",
      "schedule": [
        {
          "time": "HH:MM",
          "location": "string - building name",
          "activity": "string",
          "coordinates": { "lat": number, "lng": number },
          "notes": "optional string explaining key constraints (optional)"
        }
      ]
    }
  ]
}

Do not include comments outside the JSON. Do not change property names.
If you cannot find coordinates for a building, omit that schedule item
and choose another building from CONTEXT instead of guessing. Your first and last item for location must be same as HOME address.
[CAUTION]
Every response MUST start with exactly one of these flags, followed immediately by the JSON object:
- "GOOD RESULT"
- "LACK INFO"

you must have 5 stops including home at start and end!!!!
If you are satisfied that you can follow the user's request with the given CONTEXT, print
"GOOD RESULT" and then return the JSON schedule described above.

If you feel you cannot fully satisfy the user's request with the given CONTEXT, print
"LACK INFO" and then return a JSON schedule that describes a simple fallback plan where:
- The user studies all day at Grainger Library on the requested date from 13:00 to 23:00, and
- Then sleeps at ECEB (ECE Building) from 23:00 to 09:00.

You must ALWAYS return a JSON object in the specified format, even when the flag is "LACK INFO".
The flag ("GOOD RESULT" or "LACK INFO") must be at the VERY BEGINNING of all other output.
The first word you output should be one of them, then followed by json output, NO ANY OTHER CONTENT or thinking output,
 which may cause our systems to fail.
`,
		cfg.UserProfile,
		cfg.Buildings,
		cfg.Histories,
		cfg.Weather,
		cfg.Restaurants,
		cfg.MealPreference,
		cfg.HomeAddress,
		cfg.UserRequest,
		cfg.TargetDate,
	)
}
