package platforms

import (
	"context"
	"sort"

	"github.com/brandscope/visibility-bot/internal/config"
)

// Platform defines the interface for AI platform clients
type Platform interface {
	// GetName returns the registry id ("openai", "anthropic", "gemini", "perplexity")
	GetName() string
	// GetDisplayName returns the label used in reports and error-marked responses
	GetDisplayName() string
	// Query sends a single prompt and returns the raw response text
	Query(ctx context.Context, prompt string) (string, error)
	// IsEnabled reports whether credentials are configured
	IsEnabled() bool
}

// Registry resolves platform ids to clients. Platform selection is always a
// map lookup, so adding a platform means registering one more client.
type Registry struct {
	platforms map[string]Platform
}

// NewRegistry builds the registry from the configured credentials
func NewRegistry(cfg *config.Config) *Registry {
	return NewRegistryOf(
		NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel),
		NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel),
		NewPerplexity(cfg.PerplexityAPIKey, cfg.PerplexityModel),
	)
}

// NewRegistryOf builds a registry from explicit clients
func NewRegistryOf(platforms ...Platform) *Registry {
	reg := &Registry{platforms: make(map[string]Platform, len(platforms))}
	for _, platform := range platforms {
		reg.platforms[platform.GetName()] = platform
	}
	return reg
}

// Get returns the client registered under the given id
func (r *Registry) Get(id string) (Platform, bool) {
	platform, ok := r.platforms[id]
	return platform, ok
}

// Names lists all registered platform ids in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnabledNames lists the ids of platforms with credentials configured
func (r *Registry) EnabledNames() []string {
	var names []string
	for _, name := range r.Names() {
		if r.platforms[name].IsEnabled() {
			names = append(names, name)
		}
	}
	return names
}

// All returns every registered client in id order
func (r *Registry) All() []Platform {
	all := make([]Platform, 0, len(r.platforms))
	for _, name := range r.Names() {
		all = append(all, r.platforms[name])
	}
	return all
}
