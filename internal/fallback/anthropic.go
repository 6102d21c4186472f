package fallback

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicResponder answers via the Anthropic messages API.
type AnthropicResponder struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

func NewAnthropic(apiKey, model string, maxTokens int) *AnthropicResponder {
	if model == "" {
		model = string(anthropic.ModelClaude3_7SonnetLatest)
	}

	return &AnthropicResponder{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (r *AnthropicResponder) Respond(ctx context.Context, text string) (string, error) {
	msg, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: int64(r.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(text))},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			out.WriteString(b.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}

	return strings.TrimSpace(out.String()), nil
}
