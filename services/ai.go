package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"transparencyhub/config"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatGPT calls the OpenAI chat completions endpoint.
type ChatGPT struct {
	APIKey string
	URL    string
	Model  string
	client *http.Client
}

func NewChatGPT(cfg config.AIConfig) *ChatGPT {
	url := cfg.BaseURL
	if url == "" {
		url = defaultOpenAIURL
	}
	return &ChatGPT{
		APIKey: cfg.APIKey,
		URL:    url,
		Model:  cfg.ModelName(),
		client: &http.Client{},
	}
}

// GenerateText sends prompt as the user message under the transparency system prompt.
func (c *ChatGPT) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := c.chat(ctx, prompt)
	return text, providerError(config.ProviderOpenAI, err)
}

func (c *ChatGPT) chat(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var responseData struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &responseData); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(responseData.Choices) == 0 || strings.TrimSpace(responseData.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return responseData.Choices[0].Message.Content, nil
}
