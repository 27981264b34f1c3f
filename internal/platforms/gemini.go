package platforms

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// GeminiPlatform queries Gemini via the Google GenAI SDK
type GeminiPlatform struct {
	apiKey string
	model  string

	// the SDK client needs a context to construct, so it is built on first use
	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGemini creates a Gemini platform client
func NewGemini(apiKey, model string) *GeminiPlatform {
	return &GeminiPlatform{
		apiKey: apiKey,
		model:  model,
	}
}

func (p *GeminiPlatform) GetName() string {
	return "gemini"
}

func (p *GeminiPlatform) GetDisplayName() string {
	return "Gemini"
}

func (p *GeminiPlatform) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *GeminiPlatform) Query(ctx context.Context, prompt string) (string, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "No response generated", nil
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "No response generated", nil
	}
	return text, nil
}

func (p *GeminiPlatform) ensureClient(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: p.apiKey,
		})
	})
	return p.client, p.initErr
}
