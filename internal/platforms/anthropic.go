package platforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicPlatform queries Claude via the official Anthropic SDK
type AnthropicPlatform struct {
	client *anthropic.Client
	apiKey string
	model  string
}

// NewAnthropic creates an Anthropic platform client
func NewAnthropic(apiKey, model string) *AnthropicPlatform {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicPlatform{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (p *AnthropicPlatform) GetName() string {
	return "anthropic"
}

func (p *AnthropicPlatform) GetDisplayName() string {
	return "Anthropic"
}

func (p *AnthropicPlatform) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *AnthropicPlatform) Query(ctx context.Context, prompt string) (string, error) {
	messages := []anthropic.MessageParam{{
		Content: []anthropic.ContentBlockParamUnion{{
			OfText: &anthropic.TextBlockParam{Text: prompt},
		}},
		Role: anthropic.MessageParamRoleUser,
	}}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   500,
		Messages:    messages,
		Temperature: anthropic.Float(0.7),
	})
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range response.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}

	return text.String(), nil
}
