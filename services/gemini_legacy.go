package services

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"transparencyhub/config"
)

// GeminiLegacy generates text with the github.com/google/generative-ai-go client,
// for deployments pinned to the older SDK.
type GeminiLegacy struct {
	client *genai.Client
	model  string
}

func NewGeminiLegacy(ctx context.Context, cfg config.AIConfig) (*GeminiLegacy, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, providerError(config.ProviderGeminiLegacy, err)
	}
	return &GeminiLegacy{client: client, model: cfg.ModelName()}, nil
}

func (g *GeminiLegacy) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(500)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockLowAndAbove},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", providerError(config.ProviderGeminiLegacy, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", providerError(config.ProviderGeminiLegacy, ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	text := cleanModelOutput(sb.String())
	if text == "" {
		return "", providerError(config.ProviderGeminiLegacy, ErrEmptyResponse)
	}
	return text, nil
}

// Close releases the underlying gRPC connection.
func (g *GeminiLegacy) Close() error {
	return g.client.Close()
}
