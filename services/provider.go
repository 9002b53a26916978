package services

import (
	"context"
	"fmt"

	"transparencyhub/config"
)

// NewTextGenerator builds the configured provider. It returns a nil generator and
// no error when no credential is configured; augmentation is then disabled.
func NewTextGenerator(ctx context.Context, cfg config.AIConfig) (TextGenerator, error) {
	if !cfg.IsEnabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewChatGPT(cfg), nil
	case config.ProviderGemini:
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderGeminiLegacy:
		g, err := NewGeminiLegacy(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
