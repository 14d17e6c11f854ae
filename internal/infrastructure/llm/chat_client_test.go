package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"UXTester/internal/config"
)

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:     endpoint,
		Model:        "test-model",
		APIKey:       "key",
		SystemPrompt: "You write summaries.",
	}
}

func TestGenerateReturnsTrimmedContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer key" {
			t.Errorf("unexpected auth header: %q", auth)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "test-model" || len(payload.Messages) != 2 {
			t.Errorf("unexpected request payload: %+v", payload)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Scores look solid.  "}}]}`))
	}))
	defer server.Close()

	client := NewChatClient(testConfig(server.URL))
	text, err := client.Generate(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if text != "Scores look solid." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewChatClient(testConfig(server.URL))
	if _, err := client.Generate(context.Background(), "summarize"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewChatClient(testConfig(server.URL))
	if _, err := client.Generate(context.Background(), "summarize"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestGenerateMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewChatClient(config.LLMConfig{})
	if _, err := client.Generate(context.Background(), "summarize"); err == nil {
		t.Fatal("expected error without credentials")
	}
}
