package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const perplexityEndpoint = "https://api.perplexity.ai/chat/completions"

// PerplexityPlatform queries Perplexity's chat completions API over HTTP
type PerplexityPlatform struct {
	apiKey string
	model  string
	client *resty.Client
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityRequest struct {
	Model                  string              `json:"model"`
	Messages               []perplexityMessage `json:"messages"`
	MaxTokens              int                 `json:"max_tokens"`
	Temperature            float64             `json:"temperature"`
	TopP                   float64             `json:"top_p"`
	ReturnImages           bool                `json:"return_images"`
	ReturnRelatedQuestions bool                `json:"return_related_questions"`
	SearchRecencyFilter    string              `json:"search_recency_filter"`
	Stream                 bool                `json:"stream"`
}

type perplexityResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewPerplexity creates a Perplexity platform client
func NewPerplexity(apiKey, model string) *PerplexityPlatform {
	return &PerplexityPlatform{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

func (p *PerplexityPlatform) GetName() string {
	return "perplexity"
}

func (p *PerplexityPlatform) GetDisplayName() string {
	return "Perplexity"
}

func (p *PerplexityPlatform) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *PerplexityPlatform) Query(ctx context.Context, prompt string) (string, error) {
	body := perplexityRequest{
		Model: p.model,
		Messages: []perplexityMessage{
			{Role: "system", Content: "Be precise and concise in your response."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:           500,
		Temperature:         0.7,
		TopP:                0.9,
		SearchRecencyFilter: "month",
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(perplexityEndpoint)
	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%d - %s", resp.StatusCode(), resp.String())
	}

	var parsed perplexityResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return parsed.Choices[0].Message.Content, nil
}
