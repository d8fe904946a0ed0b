package llm

import (
	"context"
)

// ChatInvoker performs exactly one chat-completion request for a model id
// and returns the raw response text. Implementations do not retry and do not
// interpret the text; repair and fallback are the interpreter's and the
// orchestrator's job.
type ChatInvoker interface {
	ChatCompletion(ctx context.Context, modelID, prompt string, maxTokens int) (string, error)
}
