// README: Gemini chat invoker via Google's official SDK.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient adapts the Gemini SDK to the ChatInvoker contract so Gemini
// models can participate in the same fan-out as Fireworks-hosted ones.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient initialises the SDK client. Unlike the Fireworks client the
// SDK refuses to construct without a key, so callers should only wire this
// invoker when GEMINI_API_KEY is configured.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Close cleans up the underlying SDK client.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// ChatCompletion sends one prompt to the given Gemini model and returns the
// raw reply text. maxTokens maps onto the SDK's output-token cap.
func (c *GeminiClient) ChatCompletion(ctx context.Context, modelID, prompt string, maxTokens int) (string, error) {
	model := c.client.GenerativeModel(modelID)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}
