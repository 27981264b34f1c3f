package platforms

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIPlatform queries ChatGPT via the official OpenAI SDK
type OpenAIPlatform struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAI creates an OpenAI platform client
func NewOpenAI(apiKey, model string) *OpenAIPlatform {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIPlatform{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (p *OpenAIPlatform) GetName() string {
	return "openai"
}

func (p *OpenAIPlatform) GetDisplayName() string {
	return "OpenAI"
}

func (p *OpenAIPlatform) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *OpenAIPlatform) Query(ctx context.Context, prompt string) (string, error) {
	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(p.model),
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}
