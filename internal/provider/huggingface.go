package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peakfinance/internal/config"
)

const defaultHuggingFaceBaseURL = "https://router.huggingface.co/v1"

// HuggingFaceProvider calls the Hugging Face inference router, which speaks
// the OpenAI chat-completions wire format.
type HuggingFaceProvider struct {
	httpClient   *http.Client
	baseURL      string
	model        string
	apiKey       string
	systemPrompt string
	timeout      time.Duration
	maxRetries   int
}

// NewHuggingFaceProvider creates a provider for the Hugging Face inference API.
func NewHuggingFaceProvider(httpClient *http.Client, cfg *config.Config) *HuggingFaceProvider {
	baseURL := cfg.AIBaseURL
	if baseURL == "" {
		baseURL = defaultHuggingFaceBaseURL
	}
	return &HuggingFaceProvider{
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
func (p *HuggingFaceProvider) Name() string { return "huggingface" }

// Generate calls the inference router with a bounded per-attempt timeout and
// a small retry budget.
func (p *HuggingFaceProvider) Generate(ctx context.Context, question, grounding string) (string, error) {
	userContent := fmt.Sprintf(
		"Provide the response as a short narrative with bullet points when helpful.\n\nContext:\n%s\n\nQuestion:\n%s",
		grounding, question,
	)
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: 0.6,
		MaxTokens:   400,
		TopP:        0.9,
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
	return "", fmt.Errorf("huggingface generate: %w", lastErr)
}
