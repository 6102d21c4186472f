// Package fallback wraps the optional external text-generation service
// consulted when keyword classification yields nothing. It is a
// best-effort enrichment: every failure is absorbed by the caller and
// degrades to the generic help reply.
package fallback

import (
	"context"
	"fmt"

	"github.com/railvoice/railvoice/internal/config"
)

const systemPrompt = "You are a helpful IVR assistant for Indian Railways."

// Responder produces a free-form reply for input the keyword rules
// could not classify.
type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

// New builds the configured provider. A missing API key disables the
// fallback entirely: New returns (nil, nil) and the caller must treat
// a nil Responder as "not available".
func New(cfg config.FallbackConfig) (Responder, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "", "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, float32(cfg.Temperature)), nil
	case "anthropic":
		return NewAnthropic(cfg.APIKey, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown fallback provider %q", cfg.Provider)
	}
}
