package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peakfinance/internal/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider calls an OpenAI-compatible chat-completions endpoint.
// Any service exposing that wire format works by overriding the base URL.
type OpenAIProvider struct {
	httpClient   *http.Client
	baseURL      string
	model        string
	apiKey       string
	systemPrompt string
	timeout      time.Duration
	maxRetries   int
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible backend.
func NewOpenAIProvider(httpClient *http.Client, cfg *config.Config) *OpenAIProvider {
	baseURL := cfg.AIBaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIProvider{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		model:        cfg.AIModel,
		apiKey:       cfg.AIAPIKey,
		systemPrompt: cfg.AISystemPrompt,
		timeout:      cfg.AITimeout,
		maxRetries:   cfg.AIMaxRetries,
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// Generate calls the backend with a bounded per-attempt timeout and a small
// retry budget. On exhaustion it returns the last error; recovery into a
// user-visible fallback message is the advisor's job, not the provider's.
func (p *OpenAIProvider) Generate(ctx context.Context, question, grounding string) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", grounding, question)},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		answer, err := postChat(attemptCtx, p.httpClient, p.baseURL+"/chat/completions", p.apiKey, reqBody)
		cancel()
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("openai generate: %w", lastErr)
}
