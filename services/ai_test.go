package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transparencyhub/config"
)

func newTestChatGPT(t *testing.T, handler http.HandlerFunc) *ChatGPT {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatGPT(config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "sk-test", BaseURL: srv.URL})
}

func TestChatGPTGenerateText(t *testing.T) {
	var got chatRequest
	gpt := newTestChatGPT(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Q: Is it vegan?\nType: radio\nCategory: diet"}}]}`))
	})

	text, err := gpt.GenerateText(context.Background(), "prompt body")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "Q: Is it vegan?\nType: radio\nCategory: diet" {
		t.Errorf("unexpected text %q", text)
	}
	if got.Model != "gpt-3.5-turbo" || got.MaxTokens != 500 || got.Temperature != 0.7 {
		t.Errorf("unexpected request parameters: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "prompt body" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestChatGPTErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, nil},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`, nil},
		{"malformed", http.StatusOK, `not json`, nil},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gpt := newTestChatGPT(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := gpt.GenerateText(context.Background(), "p")
			var pe *ProviderError
			if !errors.As(err, &pe) || pe.Provider != config.ProviderOpenAI {
				t.Fatalf("expected openai ProviderError, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestChatGPTHonoursContext(t *testing.T) {
	gpt := newTestChatGPT(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := gpt.GenerateText(ctx, "p"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNewTextGeneratorDisabled(t *testing.T) {
	gen, err := NewTextGenerator(context.Background(), config.AIConfig{Provider: config.ProviderGemini})
	if err != nil || gen != nil {
		t.Errorf("expected nil generator without credential, got %v, %v", gen, err)
	}
}

func TestNewTextGeneratorOpenAI(t *testing.T) {
	gen, err := NewTextGenerator(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "sk"})
	if err != nil {
		t.Fatalf("NewTextGenerator: %v", err)
	}
	if _, ok := gen.(*ChatGPT); !ok {
		t.Errorf("expected *ChatGPT, got %T", gen)
	}
}

func TestNewTextGeneratorUnknown(t *testing.T) {
	if _, err := NewTextGenerator(context.Background(), config.AIConfig{Provider: "llama", APIKey: "k"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestCleanModelOutput(t *testing.T) {
	in := "```text\nQ: a\nType: text\n```"
	if got := cleanModelOutput(in); got != "Q: a\nType: text" {
		t.Errorf("cleanModelOutput = %q", got)
	}
}
