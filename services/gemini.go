package services

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"transparencyhub/config"
)

// Gemini generates text with the google.golang.org/genai client.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg config.AIConfig) (*Gemini, error) {
	clientConfig := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, providerError(config.ProviderGemini, err)
	}
	return &Gemini{client: client, model: cfg.ModelName()}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   500,
	})
	if err != nil {
		return "", providerError(config.ProviderGemini, err)
	}
	text := cleanModelOutput(resp.Text())
	if text == "" {
		return "", providerError(config.ProviderGemini, ErrEmptyResponse)
	}
	return text, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```text")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
