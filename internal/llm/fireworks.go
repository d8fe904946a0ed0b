// README: Fireworks.ai chat-completions client (OpenAI-compatible wire format).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFireworksBaseURL is the OpenAI-compatible inference endpoint.
const DefaultFireworksBaseURL = "https://api.fireworks.ai/inference/v1"

// FireworksClient talks to the Fireworks.ai chat-completions API.
type FireworksClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewFireworksClient builds a client. An empty apiKey is allowed here; the
// missing-credential check happens per call so the orchestrator can convert
// it into a per-model FAILED result instead of refusing to start.
func NewFireworksClient(apiKey, baseURL string) *FireworksClient {
	if baseURL == "" {
		baseURL = DefaultFireworksBaseURL
	}
	return &FireworksClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		// 60s covers slow 70B-class completions; context cancellation is
		// still honoured via NewRequestWithContext.
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

type fireworksChatRequest struct {
	Model     string                 `json:"model"`
	Messages  []fireworksChatMessage `json:"messages"`
	MaxTokens int                    `json:"max_tokens,omitempty"`
}

type fireworksChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type fireworksChatResponse struct {
	Choices []struct {
		Message fireworksChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletion sends one prompt to the given model and returns the raw
// reply text, which may be empty. No retries.
func (c *FireworksClient) ChatCompletion(ctx context.Context, modelID, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("fireworks: FIREWORKS_API_KEY is not set")
	}

	reqBody, err := json.Marshal(fireworksChatRequest{
		Model:     modelID,
		Messages:  []fireworksChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("fireworks: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("fireworks: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fireworks: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fireworks: read response: %w", err)
	}

	var cr fireworksChatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("fireworks: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("fireworks: api error: %s", cr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fireworks: unexpected status %d (raw: %s)", resp.StatusCode, body)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("fireworks: API returned empty choices array (raw: %s)", body)
	}
	return cr.Choices[0].Message.Content, nil
}
