package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"peakfinance/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AIProvider:     "openai",
		AIBaseURL:      baseURL,
		AIModel:        "test-model",
		AIAPIKey:       "test-key",
		AITimeout:      2 * time.Second,
		AIMaxRetries:   2,
		AISystemPrompt: "You are a test assistant.",
	}
}

func TestFromConfig(t *testing.T) {
	t.Run("missing_key_degrades_to_offline", func(t *testing.T) {
		cfg := testConfig("")
		cfg.AIAPIKey = ""
		p := FromConfig(cfg, http.DefaultClient)
		if p.Name() != "offline" {
			t.Errorf("expected offline provider, got %s", p.Name())
		}
	})

	t.Run("missing_model_degrades_to_offline", func(t *testing.T) {
		cfg := testConfig("")
		cfg.AIModel = ""
		p := FromConfig(cfg, http.DefaultClient)
		if p.Name() != "offline" {
			t.Errorf("expected offline provider, got %s", p.Name())
		}
	})

	t.Run("selects_openai_by_default", func(t *testing.T) {
		p := FromConfig(testConfig(""), http.DefaultClient)
		if p.Name() != "openai" {
			t.Errorf("expected openai provider, got %s", p.Name())
		}
	})

	t.Run("selects_huggingface", func(t *testing.T) {
		cfg := testConfig("")
		cfg.AIProvider = " HuggingFace "
		p := FromConfig(cfg, http.DefaultClient)
		if p.Name() != "huggingface" {
			t.Errorf("expected huggingface provider, got %s", p.Name())
		}
	})
}

func TestOpenAIProviderGenerate(t *testing.T) {
	t.Run("returns_completion_content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Save 20% of your income.  "}}]}`))
		}))
		defer srv.Close()

		p := NewOpenAIProvider(srv.Client(), testConfig(srv.URL))
		answer, err := p.Generate(context.Background(), "how much should I save?", "income 50000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer != "Save 20% of your income." {
			t.Errorf("unexpected answer %q", answer)
		}
	})

	t.Run("errors_after_retry_budget", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewOpenAIProvider(srv.Client(), testConfig(srv.URL))
		_, err := p.Generate(context.Background(), "question", "grounding")
		if err == nil {
			t.Fatal("expected error after exhausting retries")
		}
		// maxRetries 2 means 3 attempts total.
		if got := calls.Load(); got != 3 {
			t.Errorf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("errors_on_empty_choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		p := NewOpenAIProvider(srv.Client(), testConfig(srv.URL))
		if _, err := p.Generate(context.Background(), "question", "grounding"); err == nil {
			t.Fatal("expected error for empty choices")
		}
	})

	t.Run("stops_retrying_on_cancelled_context", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewOpenAIProvider(srv.Client(), testConfig(srv.URL))
		if _, err := p.Generate(ctx, "question", "grounding"); err == nil {
			t.Fatal("expected error with cancelled context")
		}
		if got := calls.Load(); got > 1 {
			t.Errorf("expected at most 1 attempt with cancelled context, got %d", got)
		}
	})
}

func TestHuggingFaceProviderGenerate(t *testing.T) {
	t.Run("returns_completion_content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Automate your savings."}}]}`))
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.AIProvider = "huggingface"
		p := NewHuggingFaceProvider(srv.Client(), cfg)
		answer, err := p.Generate(context.Background(), "savings tips?", "income 50000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer != "Automate your savings." {
			t.Errorf("unexpected answer %q", answer)
		}
	})
}

func TestOfflineProviderGenerate(t *testing.T) {
	p := NewOfflineProvider()

	t.Run("never_empty_for_non_empty_question", func(t *testing.T) {
		questions := []string{
			"help me budget",
			"should I take a loan",
			"how do I save for a goal",
			"tell me something",
			"x",
		}
		for _, q := range questions {
			answer, err := p.Generate(context.Background(), q, "")
			if err != nil {
				t.Fatalf("offline provider returned error for %q: %v", q, err)
			}
			if answer == "" {
				t.Errorf("offline provider returned empty answer for %q", q)
			}
		}
	})

	t.Run("matches_keyword_families", func(t *testing.T) {
		cases := []struct {
			question string
			fragment string
		}{
			{"how should I budget?", "Track all expenses"},
			{"what about my emi?", "DTI (Debt-to-Income)"},
			{"saving for a bike", "pay yourself first"},
			{"hello there", "What would you like to know more about?"},
		}
		for _, tc := range cases {
			answer, err := p.Generate(context.Background(), tc.question, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(answer, tc.fragment) {
				t.Errorf("answer for %q missing %q", tc.question, tc.fragment)
			}
		}
	})
}
