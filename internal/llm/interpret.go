// README: Response interpreter: flag parsing, brace-scan JSON extraction, repair.
package llm

import (
	"encoding/json"
	"strings"
)

// Canned explanations used when neither the JSON payload nor the text around
// it yields a usable reason.
const (
	reasonEmptyResponse = "Empty response from model; using fallback schedule at Grainger Library and ECEB."
	reasonLackInfo      = "The model reported limited context; using a simplified schedule at Grainger Library and ECEB."
	reasonGoodResult    = "Schedule generated based on the available context."
	reasonNoJSON        = "Model could not generate a structured schedule; using fallback at Grainger Library and ECEB."
)

// maxReasonWords caps the reason string; truncation is silent.
const maxReasonWords = 150

// Interpret converts one raw model response into a uniform result. It is a
// pure function of the text and never fails: however badly the model ignored
// the prompt protocol, the caller gets a status in {GOOD RESULT, LACK INFO}
// and a non-empty pathResult (real or fallback).
func Interpret(raw string) InterpretResult {
	content := strings.TrimSpace(raw)
	if content == "" {
		return InterpretResult{
			Status: StatusLackInfo,
			Data: GenerationData{
				Reason:     reasonEmptyResponse,
				PathResult: []PathOption{FallbackPath("")},
			},
		}
	}

	status, rest := parseStatusFlag(content)
	jsonText, outside := extractJSON(rest)

	var fields map[string]json.RawMessage
	if jsonText != "" {
		if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
			fields = nil
		}
	}

	if fields != nil {
		var paths []PathOption
		if raw, ok := fields["pathResult"]; ok {
			// A malformed pathResult is not an error; it just means we have
			// nothing usable and substitute the canned plan.
			_ = json.Unmarshal(raw, &paths)
		}
		if len(paths) == 0 {
			paths = []PathOption{FallbackPath("")}
		}

		var reason string
		if raw, ok := fields["reason"]; ok {
			_ = json.Unmarshal(raw, &reason)
		}
		if strings.TrimSpace(reason) == "" {
			reason = outside
		}
		if reason == "" {
			if status == StatusLackInfo {
				reason = reasonLackInfo
			} else {
				reason = reasonGoodResult
			}
		}

		return InterpretResult{
			Status: status,
			Data: GenerationData{
				Reason:     normalizeReason(reason),
				PathResult: paths,
			},
		}
	}

	// No usable JSON anywhere in the response. Whatever the flag said, this
	// is a negative outcome.
	reason := outside
	if reason == "" {
		reason = content
	}
	if reason == "" {
		reason = reasonNoJSON
	}
	return InterpretResult{
		Status: StatusLackInfo,
		Data: GenerationData{
			Reason:     normalizeReason(reason),
			PathResult: []PathOption{FallbackPath("")},
		},
	}
}

// parseStatusFlag recognises one of the two permitted flags at the very
// beginning of the text, case-insensitively, and strips it. Text without a
// recognised flag is treated as LACK INFO: disobedience is never success.
func parseStatusFlag(content string) (Status, string) {
	for _, flag := range []Status{StatusGoodResult, StatusLackInfo} {
		n := len(flag)
		if len(content) >= n && strings.EqualFold(content[:n], string(flag)) {
			return flag, strings.TrimLeft(content[n:], " \t\r\n")
		}
	}
	return StatusLackInfo, content
}

// extractJSON slices the span from the first '{' to the last '}' as the JSON
// candidate. Everything outside that span is returned as a single
// space-joined string; it becomes the reason of last resort. The scan is a
// raw index search on purpose: any object-shaped, parseable subsequence is
// acceptable even when the model wrapped it in chatter.
func extractJSON(rest string) (jsonText, outside string) {
	first := strings.Index(rest, "{")
	last := strings.LastIndex(rest, "}")

	before := rest
	if first != -1 {
		before = rest[:first]
	}
	before = strings.TrimSpace(before)

	after := ""
	if last != -1 {
		after = strings.TrimSpace(rest[last+1:])
	}

	var parts []string
	if before != "" {
		parts = append(parts, before)
	}
	if after != "" {
		parts = append(parts, after)
	}
	outside = strings.Join(parts, " ")

	if first != -1 && last != -1 && first <= last {
		jsonText = rest[first : last+1]
	}
	return jsonText, outside
}

// normalizeReason collapses whitespace and truncates to maxReasonWords
// whitespace-delimited words without marking the truncation.
func normalizeReason(text string) string {
	words := strings.Fields(text)
	if len(words) > maxReasonWords {
		words = words[:maxReasonWords]
	}
	return strings.Join(words, " ")
}
