package services

import (
	"context"
	"errors"
	"fmt"
)

// systemPrompt frames every augmentation call.
const systemPrompt = "You are an expert in product transparency and ethical sourcing."

// TextGenerator is the optional external text generation capability.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ProviderError wraps any failure of a TextGenerator call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

var (
	// ErrQuotaExceeded is returned when the shared augmentation budget is spent.
	ErrQuotaExceeded = errors.New("augmentation quota exceeded")
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("no text returned")
)

func providerError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Err: err}
}
