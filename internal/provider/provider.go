// Package provider defines the interface for generating advisor answers from
// AI backends, with an offline fallback that needs no external service.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"peakfinance/internal/config"
)

// Provider generates an answer for a user question grounded in the user's
// financial context summary.
type Provider interface {
	// Name returns the provider's identifier (e.g., "openai", "huggingface", "offline").
	Name() string

	// Generate produces an answer for the question. The grounding string is
	// the aggregated financial summary, never raw records.
	Generate(ctx context.Context, question, grounding string) (string, error)
}

// FromConfig selects a provider once at startup. Missing credentials or model
// always degrade to the offline provider so the product keeps working with
// zero external dependencies.
func FromConfig(cfg *config.Config, httpClient *http.Client) Provider {
	if cfg.AIAPIKey == "" || cfg.AIModel == "" {
		return NewOfflineProvider()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.AIProvider)) {
	case "huggingface":
		return NewHuggingFaceProvider(httpClient, cfg)
	default:
		return NewOpenAIProvider(httpClient, cfg)
	}
}

// chatMessage is a single message in a chat-completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat-completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p,omitempty"`
}

// chatResponse is the subset of the chat-completion response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// postChat performs a single chat-completion call against an
// OpenAI-compatible endpoint and returns the first choice's content.
func postChat(ctx context.Context, client *http.Client, url, apiKey string, reqBody chatRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion: unexpected status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion: response contained no choices")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion: response contained no content")
	}
	return content, nil
}
